package column

import (
	"encoding/binary"
	"math"

	"lv-priceest/internal/model"
	"lv-priceest/internal/xtime"
)

// PriceValDecoder decodes a little-endian int64 PriceVal column.
var PriceValDecoder = Decoder[model.PriceVal]{
	ElemSize: 8,
	Decode: func(b []byte) model.PriceVal {
		return model.PriceVal(int64(binary.LittleEndian.Uint64(b)))
	},
}

// TimestampDecoder decodes a little-endian uint64 Timestamp column.
var TimestampDecoder = Decoder[xtime.Timestamp]{
	ElemSize: 8,
	Decode: func(b []byte) xtime.Timestamp {
		return xtime.Timestamp(binary.LittleEndian.Uint64(b))
	},
}

// PriceIntervalDecoder decodes a little-endian float64 PriceInterval column.
var PriceIntervalDecoder = Decoder[model.PriceInterval]{
	ElemSize: 8,
	Decode: func(b []byte) model.PriceInterval {
		return model.PriceInterval(math.Float64frombits(binary.LittleEndian.Uint64(b)))
	},
}
