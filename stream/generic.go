// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package stream

import (
	"fmt"
	"time"
)

// Tags of the generic value codec. The tag values are part of the wire
// format; new kinds may only be appended, never reordered.
const (
	tagNull byte = iota
	tagBool
	tagByte
	tagInt16
	tagInt32
	tagInt64
	tagFloat32
	tagFloat64
	tagString
	tagBytes
	tagInt32Array
	tagInt64Array
	tagFloat64Array
	tagList
	tagStringMap
	tagTime
	tagGeoPoint
	tagFloat32Array
)

// GeoPoint is a geographic position given as a latitude/longitude pair.
type GeoPoint struct {
	Lat float64
	Lon float64
}

// WriteGenericValue writes a value of one of the supported dynamic kinds
// preceded by a single tag byte selecting its decoding path. The narrowest
// matching kind is chosen from the runtime type; a plain int is widened to
// the 64-bit kind. Values of any other type are a caller error, reported
// without writing anything.
func (o *Output) WriteGenericValue(value any) error {
	switch v := value.(type) {
	case nil:
		return o.WriteByte(tagNull)
	case bool:
		if err := o.WriteByte(tagBool); err != nil {
			return err
		}
		return o.WriteBool(v)
	case byte:
		if err := o.WriteByte(tagByte); err != nil {
			return err
		}
		return o.WriteByte(v)
	case int16:
		if err := o.WriteByte(tagInt16); err != nil {
			return err
		}
		return o.WriteInt16(v)
	case int32:
		if err := o.WriteByte(tagInt32); err != nil {
			return err
		}
		return o.WriteInt32(v)
	case int64:
		if err := o.WriteByte(tagInt64); err != nil {
			return err
		}
		return o.WriteInt64(v)
	case int:
		if err := o.WriteByte(tagInt64); err != nil {
			return err
		}
		return o.WriteInt64(int64(v))
	case float32:
		if err := o.WriteByte(tagFloat32); err != nil {
			return err
		}
		return o.WriteFloat32(v)
	case float64:
		if err := o.WriteByte(tagFloat64); err != nil {
			return err
		}
		return o.WriteFloat64(v)
	case string:
		if err := o.WriteByte(tagString); err != nil {
			return err
		}
		return o.WriteString(v)
	case []byte:
		if err := o.WriteByte(tagBytes); err != nil {
			return err
		}
		return o.WriteByteArray(v)
	case []int32:
		if err := o.WriteByte(tagInt32Array); err != nil {
			return err
		}
		return WriteArray(o, v, (*Output).WriteInt32)
	case []int64:
		if err := o.WriteByte(tagInt64Array); err != nil {
			return err
		}
		return WriteArray(o, v, (*Output).WriteInt64)
	case []float32:
		if err := o.WriteByte(tagFloat32Array); err != nil {
			return err
		}
		return WriteArray(o, v, (*Output).WriteFloat32)
	case []float64:
		if err := o.WriteByte(tagFloat64Array); err != nil {
			return err
		}
		return WriteArray(o, v, (*Output).WriteFloat64)
	case []any:
		if err := o.WriteByte(tagList); err != nil {
			return err
		}
		return WriteArray(o, v, (*Output).WriteGenericValue)
	case map[string]any:
		if err := o.WriteByte(tagStringMap); err != nil {
			return err
		}
		return WriteMap(o, v, (*Output).WriteGenericValue)
	case time.Time:
		if err := o.WriteByte(tagTime); err != nil {
			return err
		}
		return o.writeTime(v)
	case GeoPoint:
		if err := o.WriteByte(tagGeoPoint); err != nil {
			return err
		}
		if err := o.WriteFloat64(v.Lat); err != nil {
			return err
		}
		return o.WriteFloat64(v.Lon)
	default:
		return fmt.Errorf("cannot write type [%T] as a generic value", value)
	}
}

// writeTime encodes an instant as epoch seconds, the in-second
// nanoseconds, and the zone offset in seconds. Zone names are not
// preserved, only their offsets.
func (o *Output) writeTime(value time.Time) error {
	if err := o.WriteZLong(value.Unix()); err != nil {
		return err
	}
	if err := o.WriteVInt(int32(value.Nanosecond())); err != nil {
		return err
	}
	_, offset := value.Zone()
	return o.WriteZLong(int64(offset))
}

// ReadGenericValue reads a value written by WriteGenericValue. The
// concrete type of the result is determined by the leading tag byte.
func (in *Input) ReadGenericValue() (any, error) {
	tag, err := in.ReadByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagNull:
		return nil, nil
	case tagBool:
		return in.ReadBool()
	case tagByte:
		return in.ReadByte()
	case tagInt16:
		return in.ReadInt16()
	case tagInt32:
		return in.ReadInt32()
	case tagInt64:
		return in.ReadInt64()
	case tagFloat32:
		return in.ReadFloat32()
	case tagFloat64:
		return in.ReadFloat64()
	case tagString:
		return in.ReadString()
	case tagBytes:
		return in.ReadByteArray()
	case tagInt32Array:
		return ReadArray(in, (*Input).ReadInt32)
	case tagInt64Array:
		return ReadArray(in, (*Input).ReadInt64)
	case tagFloat32Array:
		return ReadArray(in, (*Input).ReadFloat32)
	case tagFloat64Array:
		return ReadArray(in, (*Input).ReadFloat64)
	case tagList:
		return ReadArray(in, (*Input).ReadGenericValue)
	case tagStringMap:
		return ReadMap(in, (*Input).ReadGenericValue)
	case tagTime:
		return in.readTime()
	case tagGeoPoint:
		lat, err := in.ReadFloat64()
		if err != nil {
			return nil, err
		}
		lon, err := in.ReadFloat64()
		if err != nil {
			return nil, err
		}
		return GeoPoint{Lat: lat, Lon: lon}, nil
	default:
		return nil, fmt.Errorf("unknown generic value tag [%d]", tag)
	}
}

func (in *Input) readTime() (time.Time, error) {
	seconds, err := in.ReadZLong()
	if err != nil {
		return time.Time{}, err
	}
	nanos, err := in.ReadVInt()
	if err != nil {
		return time.Time{}, err
	}
	offset, err := in.ReadZLong()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(seconds, int64(nanos)).In(time.FixedZone("", int(offset))), nil
}
