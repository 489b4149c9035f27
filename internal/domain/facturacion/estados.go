package facturacion

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/libreria-facturacion/internal/domain"
	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
)

// Máquina de estados expuesta a la consola:
//
//	borrador --emitir--> emitida
//	emitida  --anular(motivo)--> anulada
//	emitida  --pagar(fecha)--> pagada
//	borrador --eliminar--> (eliminada)
//
// No existe vuelta a borrador. La API remota es la autoridad final.

// PuedeEmitir valida que la factura sea un borrador con al menos una línea.
func PuedeEmitir(f *entity.Factura) error {
	if f.Estado != entity.EstadoBorrador {
		return fmt.Errorf("%w: emitir desde %s", domain.ErrTransicionInvalida, f.Estado)
	}
	if len(f.Lineas) == 0 {
		return domain.ErrFacturaSinLineas
	}
	return nil
}

// PuedeAnular valida el motivo (no vacío) y que la factura esté emitida.
// El motivo se comprueba primero: no depende de ningún dato remoto.
func PuedeAnular(f *entity.Factura, motivo string) error {
	if err := ValidarMotivo(motivo); err != nil {
		return err
	}
	if f.Estado != entity.EstadoEmitida {
		return fmt.Errorf("%w: anular desde %s", domain.ErrTransicionInvalida, f.Estado)
	}
	return nil
}

// ValidarMotivo rechaza motivos vacíos o formados solo por espacios.
func ValidarMotivo(motivo string) error {
	if strings.TrimSpace(motivo) == "" {
		return domain.ErrMotivoRequerido
	}
	return nil
}

// PuedeEliminar solo permite eliminar borradores; las emitidas se anulan.
func PuedeEliminar(f *entity.Factura) error {
	if f.Estado != entity.EstadoBorrador {
		return fmt.Errorf("%w: solo se eliminan borradores, use anulación (estado %s)", domain.ErrTransicionInvalida, f.Estado)
	}
	return nil
}

// PuedeMarcarPagada exige factura emitida y fecha de pago.
func PuedeMarcarPagada(f *entity.Factura, fechaPago time.Time) error {
	if fechaPago.IsZero() {
		return domain.ErrFechaPagoRequerida
	}
	if f.Estado != entity.EstadoEmitida {
		return fmt.Errorf("%w: pagar desde %s", domain.ErrTransicionInvalida, f.Estado)
	}
	return nil
}

// Editable indica si la cabecera y las líneas aún admiten cambios.
func Editable(f *entity.Factura) bool {
	return f.Estado == entity.EstadoBorrador
}
