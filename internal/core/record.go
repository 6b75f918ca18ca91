package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Role is a recognized image slot inside an image map.
type Role string

const (
	RoleThumbnail Role = "thumbnail"
	RoleIcon      Role = "icon"
	RoleStockIcon Role = "stock_icon"
	RolePortrait  Role = "portrait"
	RoleRender    Role = "render"
	RoleBanner    Role = "banner"
)

// Roles lists the recognized roles in canonical extraction order.
var Roles = []Role{RoleThumbnail, RoleIcon, RoleStockIcon, RolePortrait, RoleRender, RoleBanner}

// Shape tells which image-bearing members a record carries.
type Shape int

const (
	ShapeBare Shape = iota
	ShapeImages
	ShapeVariants
	ShapeImagesAndVariants
)

func (s Shape) String() string {
	switch s {
	case ShapeImages:
		return "images"
	case ShapeVariants:
		return "variants"
	case ShapeImagesAndVariants:
		return "images+variants"
	default:
		return "bare"
	}
}

// member is one key/value pair of a JSON object, kept in document order.
type member struct {
	key   string
	value json.RawMessage
}

type object []member

func decodeObject(data []byte) (object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("expected a JSON object")
	}

	var obj object
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("member %q: %w", key, err)
		}
		obj = append(obj, member{key: key, value: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after JSON object")
	}
	return obj, nil
}

// get and set act on the last member named key, the one JSON decoders keep
// when a key repeats.
func (o object) get(key string) (json.RawMessage, bool) {
	for i := len(o) - 1; i >= 0; i-- {
		if o[i].key == key {
			return o[i].value, true
		}
	}
	return nil, false
}

func (o *object) set(key string, value json.RawMessage) {
	for i := len(*o) - 1; i >= 0; i-- {
		if (*o)[i].key == key {
			(*o)[i].value = value
			return
		}
	}
	*o = append(*o, member{key: key, value: value})
}

func (o object) encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := encodeString(m.key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(m.value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeString marshals s without HTML escaping so URLs with query strings
// round-trip unchanged.
func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// ImageSet is an image map: role -> reference. Members that are not
// recognized roles are carried through untouched.
type ImageSet struct {
	fields object
}

func parseImageSet(raw json.RawMessage) (*ImageSet, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	return &ImageSet{fields: obj}, nil
}

// Get returns the reference stored under role. Absent, empty and non-string
// entries all report false.
func (s *ImageSet) Get(role Role) (string, bool) {
	if s == nil {
		return "", false
	}
	raw, ok := s.fields.get(string(role))
	if !ok {
		return "", false
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil || v == "" {
		return "", false
	}
	return v, true
}

func (s *ImageSet) Set(role Role, ref string) error {
	raw, err := encodeString(ref)
	if err != nil {
		return err
	}
	s.fields.set(string(role), raw)
	return nil
}

// Variant is a sub-configuration of a record with its own image map. Its
// other members (metadata and so on) are opaque.
type Variant struct {
	Images *ImageSet
	fields object
}

// Record is one metadata document.
type Record struct {
	Name     string
	Images   *ImageSet
	Variants []*Variant
	fields   object
}

func ParseRecord(data []byte) (*Record, error) {
	obj, err := decodeObject(data)
	if err != nil {
		return nil, fmt.Errorf("invalid record: %w", err)
	}
	r := &Record{fields: obj}

	if raw, ok := obj.get("name"); ok {
		// Non-string names are tolerated; the name is informational.
		_ = json.Unmarshal(raw, &r.Name)
	}

	if raw, ok := obj.get("images"); ok && !isNull(raw) {
		if r.Images, err = parseImageSet(raw); err != nil {
			return nil, fmt.Errorf("invalid record: images: %w", err)
		}
	}

	if raw, ok := obj.get("variants"); ok && !isNull(raw) {
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return nil, fmt.Errorf("invalid record: variants: %w", err)
		}
		r.Variants = make([]*Variant, 0, len(elems))
		for i, elem := range elems {
			v, err := parseVariant(elem)
			if err != nil {
				return nil, fmt.Errorf("invalid record: variants[%d]: %w", i, err)
			}
			r.Variants = append(r.Variants, v)
		}
	}
	return r, nil
}

func parseVariant(raw json.RawMessage) (*Variant, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	v := &Variant{fields: obj}
	if raw, ok := obj.get("images"); ok && !isNull(raw) {
		if v.Images, err = parseImageSet(raw); err != nil {
			return nil, fmt.Errorf("images: %w", err)
		}
	}
	return v, nil
}

// NewVariantRecord builds a record holding a single variant whose image map
// has one entry.
func NewVariantRecord(name string, role Role, ref string) (*Record, error) {
	nameRaw, err := encodeString(name)
	if err != nil {
		return nil, err
	}
	images := &ImageSet{}
	if err := images.Set(role, ref); err != nil {
		return nil, err
	}
	r := &Record{
		Name:     name,
		Variants: []*Variant{{Images: images}},
		fields:   object{{key: "name", value: nameRaw}, {key: "variants", value: json.RawMessage("[]")}},
	}
	return r, nil
}

func (r *Record) Shape() Shape {
	switch {
	case r.Images != nil && r.Variants != nil:
		return ShapeImagesAndVariants
	case r.Images != nil:
		return ShapeImages
	case r.Variants != nil:
		return ShapeVariants
	default:
		return ShapeBare
	}
}

// Marshal renders the record as 2-space indented JSON with a trailing
// newline. Member order and unrecognized members are preserved.
func (r *Record) Marshal() ([]byte, error) {
	if r.Images != nil {
		raw, err := r.Images.fields.encode()
		if err != nil {
			return nil, err
		}
		r.fields.set("images", raw)
	}
	if r.Variants != nil {
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, v := range r.Variants {
			if i > 0 {
				buf.WriteByte(',')
			}
			if v.Images != nil {
				raw, err := v.Images.fields.encode()
				if err != nil {
					return nil, err
				}
				v.fields.set("images", raw)
			}
			raw, err := v.fields.encode()
			if err != nil {
				return nil, err
			}
			buf.Write(raw)
		}
		buf.WriteByte(']')
		r.fields.set("variants", buf.Bytes())
	}

	compact, err := r.fields.encode()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
