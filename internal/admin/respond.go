package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"print3d-order-admin/pkg"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("Error writing response", "error", err)
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: Пустое тело запроса", pkg.ErrValidation)
		}
		return fmt.Errorf("%w: Некорректный JSON", pkg.ErrValidation)
	}
	return nil
}

// decodeValid decodes a body and runs its validate tags.
func (s *Server) decodeValid(w http.ResponseWriter, r *http.Request, dst any, msg string) error {
	if err := s.decode(w, r, dst); err != nil {
		return err
	}
	if err := s.validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrValidation, msg)
	}
	return nil
}

func (s *Server) pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || s.validate.Var(id, "gt=0") != nil {
		return 0, fmt.Errorf("%w: Некорректный идентификатор", pkg.ErrValidation)
	}
	return id, nil
}

// contentDisposition carries an ASCII fallback and the UTF-8 name.
func contentDisposition(ascii, name string) string {
	ascii = strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(ascii)
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, ascii, extValue(name))
}

// extValue percent-encodes every byte outside the RFC 5987 attr-char set.
func extValue(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAttrChar(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isAttrChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", c) >= 0
}
