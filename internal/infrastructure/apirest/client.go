package apirest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/libreria-facturacion/internal/domain"
	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
)

const (
	headerAPIKey    = "X-API-Key"
	headerRequestID = "X-Request-ID"

	// límite de lectura de respuestas JSON; los PDF se leen aparte.
	maxBodyJSON = 4 << 20
	maxBodyPDF  = 32 << 20
)

// ErrRespuestaGrande la respuesta supera el límite de lectura y se descarta entera.
var ErrRespuestaGrande = errors.New("apirest: respuesta demasiado grande")

// RemoteError fallo de la API remota. Message es el texto estático que ve el usuario;
// Status y Detail solo se usan en los logs.
type RemoteError struct {
	Message string
	Status  int
	Detail  string
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
	}
	return e.Message
}

// Unwrap permite errors.Is con domain.ErrRemote y, en 404, domain.ErrNotFound.
func (e *RemoteError) Unwrap() []error {
	errs := []error{domain.ErrRemote}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// MensajeUsuario devuelve el mensaje estático de un RemoteError o "" si err no lo es.
func MensajeUsuario(err error) string {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Message
	}
	return ""
}

// Options configuración del cliente.
type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  zerolog.Logger
	// HTTPClient opcional; si es nil se crea uno con Timeout.
	HTTPClient *http.Client
}

// Client adaptador HTTP de la API REST de facturación e inventario.
// Implementa los puertos de domain/repository. Usa net/http; no reintenta.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        zerolog.Logger
}

// New construye el cliente. BaseURL admite o no la barra final.
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		httpClient: hc,
		log:        opts.Logger,
	}
}

// ── Núcleo de peticiones ──────────────────────────────────────────────────────

type peticion struct {
	method string
	path   string
	query  url.Values
	body   any
	// msg mensaje estático para el usuario si la llamada falla.
	msg string
}

// hacer ejecuta la petición y devuelve el cuerpo crudo de una respuesta 2xx.
// Comprueba el usuario antes de tocar la red.
func (c *Client) hacer(ctx context.Context, u entity.Usuario, p peticion, limite int64) ([]byte, error) {
	if !u.Autenticado() {
		return nil, domain.ErrUnauthorized
	}

	endpoint := c.baseURL + p.path
	if len(p.query) > 0 {
		endpoint += "?" + p.query.Encode()
	}

	var reader io.Reader
	if p.body != nil {
		raw, err := json.Marshal(p.body)
		if err != nil {
			return nil, fmt.Errorf("apirest: serializar %s %s: %w", p.method, p.path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, p.method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("apirest: crear request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, reqID)

	log := c.log.With().
		Str("request_id", reqID).
		Str("method", p.method).
		Str("path", p.path).
		Str("user_id", u.ID).
		Logger()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("apirest: llamada HTTP fallida")
		return nil, &RemoteError{Message: p.msg, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, limite+1))
	if err != nil {
		log.Error().Err(err).Int("status", resp.StatusCode).Msg("apirest: leer respuesta")
		return nil, &RemoteError{Message: p.msg, Status: resp.StatusCode, Err: err}
	}

	log.Debug().Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("apirest")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		re := &RemoteError{Message: p.msg, Status: resp.StatusCode, Detail: recortar(string(raw), 512)}
		if resp.StatusCode == http.StatusNotFound {
			re.Err = domain.ErrNotFound
		}
		log.Warn().Int("status", resp.StatusCode).Str("detail", re.Detail).Msg("apirest: respuesta no exitosa")
		return nil, re
	}
	if int64(len(raw)) > limite {
		log.Error().Int("status", resp.StatusCode).Int64("limite", limite).Msg("apirest: respuesta demasiado grande")
		return nil, &RemoteError{Message: p.msg, Status: resp.StatusCode, Err: ErrRespuestaGrande}
	}
	return raw, nil
}

// hacerJSON ejecuta la petición y decodifica la respuesta en out (si no es nil).
func (c *Client) hacerJSON(ctx context.Context, u entity.Usuario, p peticion, out any) error {
	raw, err := c.hacer(ctx, u, p, maxBodyJSON)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.log.Error().Err(err).Str("path", p.path).Msg("apirest: deserializar respuesta")
		return &RemoteError{Message: p.msg, Err: err}
	}
	return nil
}

func recortar(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func paginacion(page, pageSize int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if pageSize > 0 {
		q.Set("page_size", fmt.Sprint(pageSize))
	}
	return q
}
