package wxr

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

// Reader decodes a WXR stream one item at a time. The channel header is read
// eagerly by NewReader; items are produced lazily by Next or Items. A Reader
// is single pass and cannot be rewound.
type Reader struct {
	path    string
	closer  io.Closer
	dec     *xml.Decoder
	channel Channel
	pending *xml.StartElement
	done    bool
	err     error
}

// Open opens path read-only and decodes its channel header.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, malformed(path, err, "cannot open file")
	}
	reader, err := newReader(path, file)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	reader.closer = file
	return reader, nil
}

// NewReader decodes the channel header from r. The caller owns r.
func NewReader(r io.Reader) (*Reader, error) {
	return newReader("", r)
}

// ReadAll opens path, drains every item and closes the file before returning.
func ReadAll(path string) (*Document, error) {
	reader, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	doc := &Document{Path: path, Channel: reader.Channel()}
	for item, err := range reader.Items() {
		if err != nil {
			return nil, err
		}
		doc.Items = append(doc.Items, item)
	}
	return doc, nil
}

func newReader(path string, r io.Reader) (*Reader, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	dec.Entity = xml.HTMLEntity

	reader := &Reader{path: path, dec: dec}
	if err := reader.openChannel(); err != nil {
		return nil, err
	}
	if err := reader.readHeader(); err != nil {
		return nil, err
	}
	return reader, nil
}

// Path returns the file the reader was opened from, empty for streams.
func (r *Reader) Path() string {
	return r.path
}

// Channel returns the decoded site header.
func (r *Reader) Channel() Channel {
	return r.channel
}

// Close releases the underlying file when the reader owns it.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	closer := r.closer
	r.closer = nil
	return closer.Close()
}

// Next returns the next item, io.EOF once the channel is exhausted, or a
// malformed input error. Errors are sticky.
func (r *Reader) Next() (*Item, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.done {
		return nil, io.EOF
	}

	if r.pending != nil {
		start := *r.pending
		r.pending = nil
		return r.decodeItem(start)
	}

	for {
		tok, err := r.dec.Token()
		if err != nil {
			return nil, r.fail(err, "unexpected end of channel")
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "item" {
				return r.decodeItem(el)
			}
			if err := r.dec.Skip(); err != nil {
				return nil, r.fail(err, "unreadable channel element "+el.Name.Local)
			}
		case xml.EndElement:
			if el.Name.Local == "channel" {
				if err := r.drain(); err != nil {
					return nil, err
				}
				r.done = true
				return nil, io.EOF
			}
		}
	}
}

// Items exposes the remaining items as a lazy sequence. Iteration stops after
// the first error, which is yielded with a nil item.
func (r *Reader) Items() iter.Seq2[*Item, error] {
	return func(yield func(*Item, error) bool) {
		for {
			item, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(item, err) || err != nil {
				return
			}
		}
	}
}

func (r *Reader) openChannel() error {
	root, err := r.nextStart()
	if err != nil {
		return r.fail(err, "document has no root element")
	}
	if root.Name.Local != "rss" {
		return r.fail(nil, fmt.Sprintf("expected <rss> root element, found <%s>", root.Name.Local))
	}

	for {
		tok, err := r.dec.Token()
		if err != nil {
			return r.fail(err, "missing <channel> element")
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "channel" {
				return nil
			}
			if err := r.dec.Skip(); err != nil {
				return r.fail(err, "unreadable element "+el.Name.Local)
			}
		case xml.EndElement:
			return r.fail(nil, "missing <channel> element")
		}
	}
}

func (r *Reader) readHeader() error {
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return r.fail(err, "unexpected end of channel header")
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "item" {
				start := el.Copy()
				r.pending = &start
				return nil
			}
			if err := r.decodeHeaderElement(el); err != nil {
				return r.fail(err, "unreadable channel element "+el.Name.Local)
			}
		case xml.EndElement:
			if el.Name.Local == "channel" {
				if err := r.drain(); err != nil {
					return err
				}
				r.done = true
				return nil
			}
		}
	}
}

func (r *Reader) decodeHeaderElement(start xml.StartElement) error {
	var target *string
	switch start.Name.Local {
	case "title":
		target = &r.channel.Title
	case "link":
		// atom:link carries its URL in an attribute and is left alone.
		if start.Name.Space != "" && strings.Contains(start.Name.Space, "Atom") {
			return r.dec.Skip()
		}
		target = &r.channel.Link
	case "description":
		target = &r.channel.Description
	case "language":
		target = &r.channel.Language
	case "base_site_url":
		target = &r.channel.BaseSiteURL
	case "base_blog_url":
		target = &r.channel.BaseBlogURL
	case "author":
		var author Author
		if err := r.dec.DecodeElement(&author, &start); err != nil {
			return err
		}
		r.channel.Authors = append(r.channel.Authors, trimAuthor(author))
		return nil
	default:
		return r.dec.Skip()
	}

	var value string
	if err := r.dec.DecodeElement(&value, &start); err != nil {
		return err
	}
	*target = strings.TrimSpace(value)
	return nil
}

func (r *Reader) decodeItem(start xml.StartElement) (*Item, error) {
	var raw rawItem
	if err := r.dec.DecodeElement(&raw, &start); err != nil {
		return nil, r.fail(err, "unreadable <item> element")
	}
	return raw.item(), nil
}

// drain consumes the tokens after </channel> so trailing garbage and unclosed
// roots are reported as malformed input.
func (r *Reader) drain() error {
	for {
		_, err := r.dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return r.fail(err, "trailing content after channel")
		}
	}
}

func (r *Reader) nextStart() (xml.StartElement, error) {
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start, nil
		}
	}
}

func (r *Reader) fail(source error, reason string) error {
	if errors.Is(source, io.EOF) {
		source = io.ErrUnexpectedEOF
	}
	r.err = malformed(r.path, source, reason)
	return r.err
}

func trimAuthor(author Author) Author {
	return Author{
		Login:       strings.TrimSpace(author.Login),
		Email:       strings.TrimSpace(author.Email),
		DisplayName: strings.TrimSpace(author.DisplayName),
		FirstName:   strings.TrimSpace(author.FirstName),
		LastName:    strings.TrimSpace(author.LastName),
	}
}
