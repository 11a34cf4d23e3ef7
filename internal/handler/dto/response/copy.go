package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Views carry uuid and time values; the wire format uses strings and unix
// seconds.
var copyOption = copier.Option{
	DeepCopy: true,
	Converters: []copier.TypeConverter{
		{
			SrcType: uuid.UUID{},
			DstType: "",
			Fn: func(src any) (any, error) {
				return src.(uuid.UUID).String(), nil
			},
		},
		{
			SrcType: &uuid.UUID{},
			DstType: (*string)(nil),
			Fn: func(src any) (any, error) {
				id := src.(*uuid.UUID)
				if id == nil {
					return (*string)(nil), nil
				}
				s := id.String()
				return &s, nil
			},
		},
		{
			SrcType: time.Time{},
			DstType: int64(0),
			Fn: func(src any) (any, error) {
				return src.(time.Time).Unix(), nil
			},
		},
		{
			SrcType: &time.Time{},
			DstType: (*int64)(nil),
			Fn: func(src any) (any, error) {
				t := src.(*time.Time)
				if t == nil {
					return (*int64)(nil), nil
				}
				u := t.Unix()
				return &u, nil
			},
		},
	},
}

func copyInto[T any](src any) *T {
	var dst T
	if err := copier.CopyWithOption(&dst, src, copyOption); err != nil {
		// Field sets are fixed at compile time; a failure here is a programming error.
		panic("response: " + err.Error())
	}
	return &dst
}

func copyList[T any, S any](src []S) []*T {
	out := make([]*T, len(src))
	for i, s := range src {
		out[i] = copyInto[T](s)
	}
	return out
}
