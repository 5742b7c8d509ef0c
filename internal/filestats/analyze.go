package filestats

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// sniffLen is the number of leading bytes inspected for binary content.
const sniffLen = 8192

// analyzeFile computes the FileRecord for the file at absPath. The size
// comes from filesystem metadata; the content is read once to count
// lines and classify binary data. relPath is the slash-form path stored
// in the record.
func analyzeFile(absPath, relPath string, size int64) (FileRecord, error) {
	rec := FileRecord{
		Path: relPath,
		Size: size,
		Ext:  filepath.Ext(absPath),
	}

	file, err := os.Open(absPath)
	if err != nil {
		return rec, err
	}
	defer file.Close()

	sniff := make([]byte, sniffLen)

	n, err := io.ReadFull(file, sniff)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return rec, err
	}

	sniff = sniff[:n]

	if looksBinary(sniff) {
		rec.Binary = true

		return rec, nil
	}

	lines, err := countLines(sniff, file)
	if err != nil {
		return rec, err
	}

	rec.Lines = lines

	return rec, nil
}

// looksBinary reports whether content cannot be decoded as text. A NUL
// byte or invalid UTF-8 marks the content as binary. An incomplete rune
// at the end of the buffer is tolerated since the buffer may be a
// truncated prefix of the file.
func looksBinary(content []byte) bool {
	if bytes.IndexByte(content, 0) >= 0 {
		return true
	}

	// Trim a partial trailing rune before validating
	for i := 0; i < utf8.UTFMax-1; i++ {
		if len(content) == 0 {
			break
		}

		if r, _ := utf8.DecodeLastRune(content); r != utf8.RuneError {
			break
		}

		content = content[:len(content)-1]
	}

	return !utf8.Valid(content)
}

// countLines counts lines across the already-read head bytes and the
// remainder of the file. A non-empty final line without a trailing
// newline counts as one line.
func countLines(head []byte, rest io.Reader) (int64, error) {
	var lines int64

	last := byte('\n')

	if len(head) > 0 {
		lines += int64(bytes.Count(head, []byte{'\n'}))
		last = head[len(head)-1]
	}

	buf := make([]byte, 32*1024)

	for {
		n, err := rest.Read(buf)
		if n > 0 {
			lines += int64(bytes.Count(buf[:n], []byte{'\n'}))
			last = buf[n-1]
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return 0, err
		}
	}

	if last != '\n' {
		lines++
	}

	return lines, nil
}
