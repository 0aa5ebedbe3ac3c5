package repositories

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors wrapped by the GORM repositories. Check with errors.Is.
var (
	ErrNotFound = errors.New("record not found")
	ErrOnSale   = errors.New("record is on sale")
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern returns a lower-cased LIKE pattern matching s anywhere,
// with LIKE wildcards in s escaped by a backslash.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// OnSaleError reports how many records of a batch are still on sale.
// It matches ErrOnSale with errors.Is.
type OnSaleError struct {
	OnSale int64
	Total  int
}

func (e *OnSaleError) Error() string {
	return fmt.Sprintf("%d of %d records are on sale", e.OnSale, e.Total)
}

func (e *OnSaleError) Unwrap() error {
	return ErrOnSale
}
