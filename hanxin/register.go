package hanxin

import zxinggo "github.com/barscan/symcore"

func init() {
	zxinggo.RegisterReader(zxinggo.FormatHanXin, func(opts *zxinggo.DecodeOptions) zxinggo.Reader {
		return NewReader()
	})
}
