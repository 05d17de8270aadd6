package classifier

import (
	"fmt"
	"net/http"
	"strings"
)

// DefaultMaxUploadSize caps how large an image the client will send.
const DefaultMaxUploadSize = 5 << 20

// Upload is one image handed to the analysis service. ContentType may be
// left empty, in which case it is sniffed from the data's magic bytes.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (u Upload) resolveContentType() string {
	if u.ContentType != "" {
		return u.ContentType
	}
	return http.DetectContentType(u.Data)
}

func (u Upload) validate(maxUpload int64) *Error {
	if len(u.Data) == 0 {
		return newError(KindValidation, fmt.Sprintf("%s: image data is empty", u.name()))
	}
	if int64(len(u.Data)) > maxUpload {
		return newError(KindValidation,
			fmt.Sprintf("%s: image is %d bytes, exceeding the %d byte upload limit", u.name(), len(u.Data), maxUpload))
	}
	if ct := u.resolveContentType(); !strings.HasPrefix(ct, "image/") {
		return newError(KindValidation, fmt.Sprintf("%s: content type %q is not an image", u.name(), ct))
	}
	return nil
}

func (u Upload) name() string {
	if u.Filename != "" {
		return u.Filename
	}
	return "upload"
}
