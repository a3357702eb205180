package dotcode

import zxinggo "github.com/barscan/symcore"

func init() {
	zxinggo.RegisterReader(zxinggo.FormatDotCode, func(opts *zxinggo.DecodeOptions) zxinggo.Reader {
		return NewReader()
	})
}
