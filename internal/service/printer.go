package service

import (
	"bufio"
	"io"
	"sync"
)

// PayloadPrinter writes whole documents to out, flushing after each one.
// Concurrent Print calls never interleave.
type PayloadPrinter struct {
	mu  sync.Mutex
	out io.Writer
	buf *bufio.Writer
}

func NewPayloadPrinter(out io.Writer) *PayloadPrinter {
	return &PayloadPrinter{out: out, buf: bufio.NewWriter(out)}
}

func (p *PayloadPrinter) Print(doc []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.write(doc)
	if err != nil {
		// bufio keeps the first error forever; start over for the next document.
		p.buf.Reset(p.out)
	}
	return err
}

func (p *PayloadPrinter) write(doc []byte) error {
	if _, err := p.buf.Write(doc); err != nil {
		return err
	}
	if len(doc) == 0 || doc[len(doc)-1] != '\n' {
		if err := p.buf.WriteByte('\n'); err != nil {
			return err
		}
	}
	return p.buf.Flush()
}
