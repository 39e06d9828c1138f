// Package notify turns incoming notifications into edge-lighting runs.
//
// A [Notification] arrives from an ingress adapter (HTTP, Redis) as a JSON
// [Payload]. The [Dispatcher] filters it, resolves its color and starts
// the animator; [Metrics] counts what happened.
package notify

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"image"
	_ "image/jpeg" // icon payloads may be JPEG
	"image/png"
	"io"
	"time"

	"github.com/gogpu/edgelight"
)

// Notification priorities, lowest to highest.
const (
	PriorityMin     = -2
	PriorityLow     = -1
	PriorityDefault = 0
	PriorityHigh    = 1
	PriorityMax     = 2
)

// MaxPayloadSize bounds the size of an encoded payload.
const MaxPayloadSize = 4 << 20

// Decoding errors.
var (
	ErrMissingPackage = errors.New("notify: missing package")
	ErrInvalidColor   = errors.New("notify: invalid color")
	ErrInvalidIcon    = errors.New("notify: invalid icon")
	ErrPayloadTooBig  = errors.New("notify: payload too large")
)

// Notification is a posted notification.
type Notification struct {
	// Package identifies the posting application.
	Package string
	Title   string
	Text    string
	// Color is the declared accent color; edgelight.Unset when absent.
	Color edgelight.Color
	// Icon is the decoded large icon, if any.
	Icon image.Image
	// IconDigest fingerprints the encoded icon bytes; zero when the icon
	// was not decoded from a payload.
	IconDigest uint64
	// Importance is one of the Priority constants.
	Importance int
	// Duration overrides the dispatcher's run duration when positive.
	Duration time.Duration
}

// Signals returns the inputs for color resolution.
func (n Notification) Signals() edgelight.Signals {
	return edgelight.Signals{Declared: n.Color, Icon: n.Icon, Package: n.Package}
}

// Payload is the wire form of a Notification.
type Payload struct {
	Package string `json:"package"`
	Title   string `json:"title,omitempty"`
	Text    string `json:"text,omitempty"`
	// Color is "#AARRGGBB", "#RRGGBB" or "#RGB".
	Color string `json:"color,omitempty"`
	// Icon is a base64-encoded PNG or JPEG image.
	Icon       string `json:"icon,omitempty"`
	Importance int    `json:"importance,omitempty"`
	DurationMS int64  `json:"duration_ms,omitempty"`
}

// Decode reads a JSON payload from r and converts it.
func Decode(r io.Reader) (Notification, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxPayloadSize+1))
	if err != nil {
		return Notification{}, fmt.Errorf("notify: read payload: %w", err)
	}
	if len(data) > MaxPayloadSize {
		return Notification{}, ErrPayloadTooBig
	}
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Notification{}, fmt.Errorf("notify: decode payload: %w", err)
	}
	return p.Notification()
}

// Notification validates the payload and decodes its color and icon.
func (p Payload) Notification() (Notification, error) {
	if p.Package == "" {
		return Notification{}, ErrMissingPackage
	}
	n := Notification{
		Package:    p.Package,
		Title:      p.Title,
		Text:       p.Text,
		Importance: p.Importance,
		Duration:   time.Duration(p.DurationMS) * time.Millisecond,
	}
	if p.Color != "" {
		c, err := edgelight.ParseHex(p.Color)
		if err != nil {
			return Notification{}, fmt.Errorf("%w: %v", ErrInvalidColor, err)
		}
		n.Color = c
	}
	if p.Icon != "" {
		raw, err := base64.StdEncoding.DecodeString(p.Icon)
		if err != nil {
			return Notification{}, fmt.Errorf("%w: %v", ErrInvalidIcon, err)
		}
		img, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return Notification{}, fmt.Errorf("%w: %v", ErrInvalidIcon, err)
		}
		n.Icon = img
		h := fnv.New64a()
		h.Write(raw)
		n.IconDigest = h.Sum64()
	}
	return n, nil
}

// NewPayload builds the wire form of n. The icon is encoded as PNG.
func NewPayload(n Notification) (Payload, error) {
	p := Payload{
		Package:    n.Package,
		Title:      n.Title,
		Text:       n.Text,
		Importance: n.Importance,
		DurationMS: n.Duration.Milliseconds(),
	}
	if !n.Color.IsUnset() {
		p.Color = n.Color.String()
	}
	if n.Icon != nil {
		var buf bytes.Buffer
		if err := png.Encode(&buf, n.Icon); err != nil {
			return Payload{}, fmt.Errorf("notify: encode icon: %w", err)
		}
		p.Icon = base64.StdEncoding.EncodeToString(buf.Bytes())
	}
	return p, nil
}

// Encode writes p as JSON.
func (p Payload) Encode(w io.Writer) error {
	return json.NewEncoder(w).Encode(p)
}
