package maxicode

import zxinggo "github.com/barscan/symcore"

func init() {
	zxinggo.RegisterReader(zxinggo.FormatMaxiCode, func(opts *zxinggo.DecodeOptions) zxinggo.Reader {
		return NewReader()
	})
}
