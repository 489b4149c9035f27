package apirest_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
	"github.com/jhoicas/libreria-facturacion/internal/infrastructure/apirest"
)

// ──────────────────────────────────────────────────────────────────────────────
// API remota falsa (facturas y líneas en memoria)
// ──────────────────────────────────────────────────────────────────────────────

const testAPIKey = "clave-de-prueba"

var usuarioTest = entity.Usuario{ID: "user_123", Email: "ana@libreria.es", Nombre: "Ana"}

type fakeAPI struct {
	mu       sync.Mutex
	nextID   int64
	facturas map[int64]map[string]any
	lineas   map[int64][]map[string]any
	libros   map[int64]map[string]any
	llamadas int
	ultima   *http.Request
	cuerpo   map[string]any
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		nextID:   100,
		facturas: map[int64]map[string]any{},
		lineas:   map[int64][]map[string]any{},
		libros: map[int64]map[string]any{
			1: {"id": 1, "titulo": "Cien años de soledad", "pvp": "20.80", "precio": "20.00", "cantidad": 5},
			2: {"id": 2, "titulo": "La Regenta", "pvp": "15.60", "precio": "15.00", "cantidad": 2},
		},
	}
}

func (f *fakeAPI) registrar(r *http.Request) {
	f.llamadas++
	f.ultima = r
	f.cuerpo = nil
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&f.cuerpo)
	}
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /facturacion/facturas/{$}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.registrar(r)
		f.nextID++
		id := f.nextID
		fac := map[string]any{}
		for k, v := range f.cuerpo {
			if k != "lineas" {
				fac[k] = v
			}
		}
		fac["id"] = id
		fac["numero"] = nil
		fac["numero_borrador"] = "BORRADOR-2026-" + strconv.FormatInt(id, 10)
		lineas, _ := f.cuerpo["lineas"].([]any)
		for _, raw := range lineas {
			l := raw.(map[string]any)
			f.nextID++
			libroID := int64(l["libro"].(float64))
			f.lineas[id] = append(f.lineas[id], map[string]any{
				"id":        f.nextID,
				"factura":   id,
				"libro":     f.libros[libroID],
				"cantidad":  l["cantidad"],
				"precio":    l["precio"],
				"descuento": l["descuento"],
				"importe":   l["importe"],
			})
		}
		fac["lineas"] = f.lineas[id]
		f.facturas[id] = fac
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(fac)
	})

	mux.HandleFunc("GET /facturacion/facturas/{id}/{$}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.registrar(r)
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		fac, ok := f.facturas[id]
		if !ok {
			http.Error(w, `{"detail":"No encontrado."}`, http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(fac)
	})

	mux.HandleFunc("GET /facturacion/facturas/{id}/lineas/{$}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.registrar(r)
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		lineas := f.lineas[id]
		if lineas == nil {
			lineas = []map[string]any{}
		}
		_ = json.NewEncoder(w).Encode(lineas)
	})

	mux.HandleFunc("POST /facturacion/facturas/{id}/emitir/{$}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.registrar(r)
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		fac, ok := f.facturas[id]
		if !ok {
			http.Error(w, "", http.StatusNotFound)
			return
		}
		fac["estado"] = "emitida"
		fac["numero"] = "F-2026-0001"
		_ = json.NewEncoder(w).Encode(fac)
	})

	mux.HandleFunc("POST /facturacion/facturas/{id}/anular/{$}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.registrar(r)
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		fac, ok := f.facturas[id]
		if !ok {
			http.Error(w, "", http.StatusNotFound)
			return
		}
		fac["estado"] = "anulada"
		fac["motivo_anulacion"] = f.cuerpo["motivo"]
		_ = json.NewEncoder(w).Encode(fac)
	})

	mux.HandleFunc("GET /facturacion/facturas/{id}/pdf/{$}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.registrar(r)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 factura"))
	})

	return mux
}

// nuevoCliente arranca la API falsa y devuelve un cliente apuntando a ella.
func nuevoCliente(t *testing.T, h http.Handler) *apirest.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return apirest.New(apirest.Options{
		BaseURL: srv.URL + "/",
		APIKey:  testAPIKey,
		Logger:  zerolog.Nop(),
	})
}
