package portfolio

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"

	"github.com/eringen/portfolio/content"
	"github.com/eringen/portfolio/views"
)

const (
	maxImageWidth = 400
	jpegQuality   = 85
	maxUploadSize = 2 << 20 // 2MB
)

// processImage decodes src, shrinks it to maxImageWidth when wider, and
// returns it as a JPEG data URI. Transparent areas become white.
func processImage(src io.Reader) (string, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		h = max(h*maxImageWidth/w, 1)
		w = maxImageWidth
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	if w == bounds.Dx() {
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (a *App) renderProfileImage(c echo.Context, code int, st views.Status) error {
	img, _, err := content.GetBlob(a.Repo, content.ProfileImageEntity)
	if err != nil && !st.Error {
		st = a.statusFor(err, "")
	}
	if !isImageDataURI(img) {
		img = ""
	}
	return RenderStatus(c, code, views.AdminProfileImage(a.site(), img, st, CsrfToken(c)))
}

func (a *App) handleProfileImage(c echo.Context) error {
	return a.renderProfileImage(c, http.StatusOK, views.Status{})
}

func (a *App) handleProfileImageUpload(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return a.renderProfileImage(c, http.StatusBadRequest, views.Status{Text: "No image file provided", Error: true})
	}
	if file.Size > maxUploadSize {
		return a.renderProfileImage(c, http.StatusBadRequest, views.Status{Text: "File too large (max 2MB)", Error: true})
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	uri, err := processImage(io.LimitReader(src, maxUploadSize))
	if err != nil {
		return a.renderProfileImage(c, http.StatusBadRequest, views.Status{Text: "Please upload an image file", Error: true})
	}

	err = content.SetBlob(a.Repo, content.ProfileImageEntity, uri)
	if err == nil {
		a.Cache.Invalidate()
		a.Logger.Info("profile image updated", "bytes", len(uri))
	}
	return a.renderProfileImage(c, http.StatusOK, a.statusFor(err, "Profile image updated successfully!"))
}

func (a *App) handleProfileImageRemove(c echo.Context) error {
	err := content.RemoveBlob(a.Repo, content.ProfileImageEntity)
	if err == nil {
		a.Cache.Invalidate()
	}
	return a.renderProfileImage(c, http.StatusOK, a.statusFor(err, "Profile image removed"))
}
