package matrix

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// String renders the matrix row by row, one line per row.
func (m *Matrix) String() string {
	var b strings.Builder
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%g", m.data[i*m.cols+j])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Fprint writes the row-major dump of m to w.
func Fprint(w io.Writer, m *Matrix) error {
	_, err := io.WriteString(w, m.String())
	return err
}

// Print writes the row-major dump of m to standard output.
func Print(m *Matrix) {
	_ = Fprint(os.Stdout, m)
}
