package cma

import (
	"fmt"
)

// clearMarker is the sentinel distinguishing "leave the reference alone"
// (attribute absent or empty) from "clear it" (explicit null on the wire).
type clearMarker struct{}

// Clear is the attribute value that encodes an explicit null, clearing a
// reference field on update. A plain empty link is omitted instead.
var Clear = clearMarker{}

// EncodeField transforms a domain value into its wire shape, guided by the
// field's descriptor when one is available and by the runtime shape of the
// value otherwise. The second return reports whether the field should appear
// in the payload at all: empty link values are omitted entirely so that "no
// change" is never conflated with "clear the reference".
//
// EncodeField is pure; it never mutates the caller's value.
func EncodeField(desc *FieldDescriptor, value interface{}) (interface{}, bool, error) {
	if _, ok := value.(clearMarker); ok {
		return nil, true, nil
	}

	if value == nil {
		return nil, false, nil
	}

	fv, err := classify(value)
	if err != nil {
		return nil, false, err
	}

	switch fv.Kind {
	case KindLink:
		if fv.Link.IsZero() {
			return nil, false, nil
		}

		return fv.Link, true, nil

	case KindLocation:
		return fv.Loc, true, nil

	case KindList:
		wire, err := encodeList(desc, fv.List)
		if err != nil {
			return nil, false, err
		}

		return wire, true, nil

	case KindRaw:
		return fv.Raw, true, nil

	case KindString, KindNumber, KindBool:
		// Scalars pass through unchanged.
		if _, isFieldValue := value.(FieldValue); isFieldValue {
			return fv.wire(), true, nil
		}

		return value, true, nil

	default:
		return nil, false, fmt.Errorf("%w: kind %s", ErrUnclassifiableValue, fv.Kind)
	}
}

// encodeList applies the homogeneity rule: the first element's kind decides
// the encoding for the whole list. Reference mode turns every element into a
// Link object; scalar mode passes elements through unchanged. An element of
// the other class is a validation error, never silently encoded.
func encodeList(desc *FieldDescriptor, elems []FieldValue) ([]interface{}, error) {
	wire := make([]interface{}, 0, len(elems))
	if len(elems) == 0 {
		return wire, nil
	}

	referenceMode := elems[0].Kind == KindLink
	if desc != nil && desc.Items != nil && desc.Items.Type == FieldTypeLink && !referenceMode {
		return nil, fmt.Errorf("%w: declared Array of %s but first element is %s",
			ErrMixedList, desc.Items.LinkType, elems[0].Kind)
	}

	for i, elem := range elems {
		if referenceMode {
			if elem.Kind != KindLink {
				return nil, fmt.Errorf("%w: element %d is %s, expected link", ErrMixedList, i, elem.Kind)
			}

			if elem.Link.LinkType != elems[0].Link.LinkType {
				return nil, fmt.Errorf("%w: element %d links %s, expected %s",
					ErrMixedList, i, elem.Link.LinkType, elems[0].Link.LinkType)
			}

			wire = append(wire, elem.Link)

			continue
		}

		switch elem.Kind {
		case KindLink:
			return nil, fmt.Errorf("%w: element %d is a link in a scalar list", ErrMixedList, i)
		case KindString, KindNumber, KindBool:
			wire = append(wire, elem.wire())
		default:
			return nil, fmt.Errorf("%w: list element %d of kind %s", ErrUnclassifiableValue, i, elem.Kind)
		}
	}

	return wire, nil
}

// classify normalizes an arbitrary attribute value into the tagged union.
func classify(value interface{}) (FieldValue, error) {
	switch v := value.(type) {
	case FieldValue:
		return v, nil
	case *Entry:
		return Reference(LinkTypeEntry, v.Sys.ID), nil
	case *Asset:
		return Reference(LinkTypeAsset, v.Sys.ID), nil
	case Link:
		return FieldValue{Kind: KindLink, Link: v}, nil
	case *Link:
		return FieldValue{Kind: KindLink, Link: *v}, nil
	case Location:
		return FieldValue{Kind: KindLocation, Loc: v}, nil
	case *Location:
		return FieldValue{Kind: KindLocation, Loc: *v}, nil
	case string:
		return String(v), nil
	case bool:
		return Boolean(v), nil
	case int:
		return Number(float64(v)), nil
	case int32:
		return Number(float64(v)), nil
	case int64:
		return Number(float64(v)), nil
	case float32:
		return Number(float64(v)), nil
	case float64:
		return Number(v), nil
	case []FieldValue:
		return FieldValue{Kind: KindList, List: v}, nil
	case []interface{}:
		elems := make([]FieldValue, 0, len(v))

		for _, raw := range v {
			elem, err := classify(raw)
			if err != nil {
				return FieldValue{}, err
			}

			elems = append(elems, elem)
		}

		return FieldValue{Kind: KindList, List: elems}, nil
	case []string:
		elems := make([]FieldValue, 0, len(v))
		for _, s := range v {
			elems = append(elems, String(s))
		}

		return FieldValue{Kind: KindList, List: elems}, nil
	case map[string]interface{}:
		return classifyMap(v), nil
	default:
		return FieldValue{}, fmt.Errorf("%w: %T", ErrUnclassifiableValue, value)
	}
}

// classifyMap recognizes the wire shapes that arrive as generic JSON maps.
func classifyMap(m map[string]interface{}) FieldValue {
	if m["type"] == TypeLink {
		linkType, _ := m["linkType"].(string)
		id, _ := m["id"].(string)

		return FieldValue{Kind: KindLink, Link: Link{Type: TypeLink, LinkType: linkType, ID: id}}
	}

	if len(m) == 2 {
		lat, latOK := numeric(m["lat"])
		lon, lonOK := numeric(m["lon"])

		if latOK && lonOK {
			return Point(lat, lon)
		}
	}

	return RawValue(m)
}

func numeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// wire returns the JSON-marshalable wire shape of a field value.
func (v FieldValue) wire() interface{} {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Num
	case KindBool:
		return v.Bool
	case KindLink:
		return v.Link
	case KindLocation:
		return v.Loc
	case KindList:
		elems := make([]interface{}, 0, len(v.List))
		for _, elem := range v.List {
			elems = append(elems, elem.wire())
		}

		return elems
	case KindRaw:
		return v.Raw
	default:
		return nil
	}
}

// DecodeValue interprets a raw wire value into the tagged union. The server
// already sends the wire shapes EncodeField produces, so decoding is shape
// detection: link objects, coordinate objects, arrays, scalars. Unrecognized
// structures are preserved as raw values.
func DecodeValue(raw interface{}) FieldValue {
	switch v := raw.(type) {
	case nil:
		return FieldValue{Kind: KindRaw, Raw: nil}
	case string:
		return String(v)
	case bool:
		return Boolean(v)
	case float64:
		return Number(v)
	case int:
		return Number(float64(v))
	case map[string]interface{}:
		return classifyMap(v)
	case []interface{}:
		elems := make([]FieldValue, 0, len(v))
		for _, item := range v {
			elems = append(elems, DecodeValue(item))
		}

		return FieldValue{Kind: KindList, List: elems}
	default:
		return RawValue(v)
	}
}
