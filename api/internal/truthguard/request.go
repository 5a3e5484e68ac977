package truthguard

import (
	"strings"

	"truthguard-bot/api/internal/util"
)

// ImageFile is one candidate file from a picker or a drop.
type ImageFile struct {
	Name string
	MIME string // may be empty; sniffed from bytes then
	Data []byte
}

// NewTextRequest builds a text submission. Whitespace-only content fails
// before any network access.
func NewTextRequest(content string, lang Language, includeEducation bool) (*AnalysisRequest, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, &ValidationError{Field: "content", Err: ErrEmptyContent}
	}
	if lang == "" {
		lang = LangEnglish
	}
	if _, ok := languageNames[lang]; !ok {
		return nil, &ValidationError{Field: "language", Err: ErrUnknownLanguage}
	}
	return &AnalysisRequest{
		ContentType:      ContentTypeText,
		Content:          trimmed,
		Language:         lang,
		IncludeEducation: includeEducation,
	}, nil
}

// NewImageRequest builds an image submission from picker/drop files.
// Only the first file is considered, even when several are supplied; callers
// must tell the user a single image is analyzed per request.
func NewImageRequest(files ...ImageFile) (*AnalysisRequest, error) {
	if len(files) == 0 {
		return nil, &ValidationError{Field: "file", Err: ErrNoFile}
	}
	f := files[0]
	if len(f.Data) == 0 {
		return nil, &ValidationError{Field: "file", Err: ErrEmptyContent}
	}
	mime := util.PickMIME(f.MIME, f.Data)
	if !strings.HasPrefix(mime, "image/") {
		return nil, &ValidationError{Field: "file", Err: ErrUnsupportedMedia}
	}
	name := f.Name
	if name == "" {
		name = "upload"
	}
	return &AnalysisRequest{
		ContentType: ContentTypeImage,
		Image:       f.Data,
		ImageName:   name,
		ImageMIME:   mime,
	}, nil
}
