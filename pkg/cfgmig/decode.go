package cfgmig

import (
	"github.com/go-viper/mapstructure/v2"
)

// decodeDocument 将 JSON 文档（map 形式）弱类型反序列化到 out。
//
// 配置 key 由 json tag 定义；数字、字符串等做宽松转换，并支持
// time.Duration 字符串与 encoding.TextUnmarshaler。
func decodeDocument(doc map[string]any, out any) error {
	conf := &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		Metadata:         nil,
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "json",
	}
	decoder, err := mapstructure.NewDecoder(conf)
	if err != nil {
		return err
	}

	return decoder.Decode(doc)
}
