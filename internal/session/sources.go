package session

import (
	"prismslink/internal/codec"
	"prismslink/internal/domain"
)

// ImageSource returns the URL of a plugin-rendered image region.
func (e *Engine) ImageSource(plugin, method string, xOffset, yOffset, refWidth, refHeight, width, height int) (string, error) {
	return codec.SourceURL(e.cfg.ImageURL, codec.MethodGenerateImage, e.stamp(), domain.Params{
		"plugin":    plugin,
		"method":    method,
		"xOffset":   xOffset,
		"yOffset":   yOffset,
		"refWidth":  refWidth,
		"refHeight": refHeight,
		"width":     width,
		"height":    height,
	}, e.st.key, e.cipher)
}

// DownloadSource returns the URL that fetches the download described by
// params, typically the event carried by DoDownload.
func (e *Engine) DownloadSource(params domain.Params) (string, error) {
	return codec.SourceURL(e.cfg.ServletURL, codec.MethodGetDownload, e.stamp(), params, e.st.key, e.cipher)
}

// UploadURL returns the URL an upload described by params is posted to.
func (e *Engine) UploadURL(params domain.Params) (string, error) {
	return codec.SourceURL(e.cfg.ServletURL, codec.MethodDoUpload, e.stamp(), params, e.st.key, e.cipher)
}
