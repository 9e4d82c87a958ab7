package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/vdraganov/go-shop-api/internal/shop"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]string{"detail": detail})
}

// writeDomainErr map error domain ke status + body "detail" ala API lama.
// Error yang tidak dikenal tidak bocor ke caller.
func writeDomainErr(w http.ResponseWriter, err error, op string) {
	var pnf *shop.ProductNotFoundError
	var ins *shop.InsufficientStockError
	switch {
	case errors.Is(err, shop.ErrOrderNotFound):
		writeDetail(w, http.StatusNotFound, "Order not found")
	case errors.As(err, &pnf):
		writeDetail(w, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", pnf.ID))
	case errors.As(err, &ins):
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("Not enough stock for product %s", ins.Name))
	default:
		log.WithError(err).WithField("op", op).Error("unexpected store error")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}
