package color

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

// Entry is one named color of a color file.
type Entry struct {
	Name  string
	Color Color
}

// LoadColorFile reads lines of the form "R G B name" with 8-bit channels, as
// in X11's rgb.txt. Lines that do not match are skipped.
func LoadColorFile(r io.Reader) ([]Entry, error) {
	var out []Entry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			continue
		}
		var ch [3]uint8
		valid := true
		for i := 0; i < 3; i++ {
			n, err := strconv.Atoi(fields[i])
			if err != nil || n < 0 || n > 255 {
				valid = false
				break
			}
			ch[i] = uint8(n)
		}
		if !valid {
			continue
		}
		out = append(out, Entry{
			Name:  strings.Join(fields[3:], " "),
			Color: RGB8(ch[0], ch[1], ch[2]),
		})
	}
	return out, scanner.Err()
}

// LoadColorFilePath is LoadColorFile on a file. A missing file yields no
// entries and no error.
func LoadColorFilePath(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	return LoadColorFile(f)
}
