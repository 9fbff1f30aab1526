package pressroom

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 1600
	minImageWidth = 16
	jpegQuality   = 80
)

// resizeImage decodes an image from src, scales it down to width when it is
// wider, and encodes it as JPEG. Images are never scaled up.
func resizeImage(src io.Reader, width int) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > width {
		newH := max(1, h*width/w)
		dst := image.NewRGBA(image.Rect(0, 0, width, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// staticPath maps a site URL such as /assets/blog/a.png or /public/a.png to
// a path inside the static directory. It fails for anything that would
// leave it.
func staticPath(src string) (string, bool) {
	if strings.Contains(src, "://") || strings.HasPrefix(src, "//") {
		return "", false
	}
	p := path.Clean("/" + src)
	if rest, ok := strings.CutPrefix(p, "/public/"); ok {
		p = rest
	}
	p = strings.TrimPrefix(p, "/")
	if p == "" || !fs.ValidPath(p) {
		return "", false
	}
	return p, true
}

// handleImage serves /img?src=<static path>&w=<width> as a resized JPEG.
func (a *App) handleImage(c echo.Context) error {
	rel, ok := staticPath(c.QueryParam("src"))
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid src")
	}
	width := maxImageWidth
	if raw := c.QueryParam("w"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid w")
		}
		width = min(max(n, minImageWidth), maxImageWidth)
	}

	f, err := os.DirFS(a.Config.StaticDir).Open(rel)
	if errors.Is(err, fs.ErrNotExist) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := resizeImage(f, width)
	if err != nil {
		a.Logger.Warn("resize image", "src", rel, "error", err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "not an image")
	}
	return c.Blob(http.StatusOK, "image/jpeg", data)
}
