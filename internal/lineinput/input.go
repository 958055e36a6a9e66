// Package lineinput reads text lines sequentially through a queue of input
// streams, tracking where each line came from.
package lineinput

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Location names a line in an input stream.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// Line is one line of text, without its line ending.
type Line struct {
	Location
	Text string
}

func (ln Line) String() string { return fmt.Sprintf("%v %q", ln.Location, ln.Text) }

// Input reads lines from the first stream in Queue until it is exhausted,
// then moves on to the next one. Exhausted streams are closed if they
// implement io.Closer. The final stream is never abandoned: once it reports
// io.EOF, every later ReadLine retries it, so that an interactive stream
// that reaches end of file may still deliver further lines.
type Input struct {
	Queue []io.Reader

	br  *bufio.Reader
	cur io.Reader
	loc Location
}

// ReadLine returns the next line. A final line lacking a line ending is
// still returned with a nil error; io.EOF is only returned once no queued
// stream has any more data. Other read errors are returned as-is, discarding
// any partially read line.
func (in *Input) ReadLine() (Line, error) {
	for {
		if in.br == nil && !in.nextIn() {
			return Line{Location: in.loc}, io.EOF
		}

		s, err := in.br.ReadString('\n')
		if s != "" && (err == nil || err == io.EOF) {
			in.loc.Line++
			s = strings.TrimSuffix(s, "\n")
			s = strings.TrimSuffix(s, "\r")
			return Line{Location: in.loc, Text: s}, nil
		}
		if err != io.EOF {
			return Line{Location: in.loc}, err
		}
		if len(in.Queue) == 0 {
			return Line{Location: in.loc}, io.EOF
		}
		in.close()
	}
}

// Close closes the current stream and every queued one that can be closed.
func (in *Input) Close() (err error) {
	if cerr := in.close(); err == nil {
		err = cerr
	}
	for _, r := range in.Queue {
		if cl, ok := r.(io.Closer); ok {
			if cerr := cl.Close(); err == nil {
				err = cerr
			}
		}
	}
	in.Queue = nil
	return err
}

func (in *Input) close() (err error) {
	if cl, ok := in.cur.(io.Closer); ok {
		err = cl.Close()
	}
	in.cur, in.br = nil, nil
	return err
}

func (in *Input) nextIn() bool {
	if len(in.Queue) == 0 {
		return false
	}
	r := in.Queue[0]
	in.Queue = in.Queue[1:]
	in.cur = r
	in.br = bufio.NewReader(r)
	in.loc = Location{Name: nameOf(r)}
	return true
}

// Named attaches a name to a reader, reported by Location.Name.
func Named(name string, r io.Reader) io.Reader {
	return namedReader{r, name}
}

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

func (nr namedReader) Close() error {
	if cl, ok := nr.Reader.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
