package serial

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/mugworks/storefront/internal/domain/model"
)

// referenceCodePattern matches the leading four characters of a buyer
// supplied reference code: two letters followed by two digits.
var referenceCodePattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}$`)

// OrderCounter supplies the number of previously stored orders shipped to
// a given state. It backs the catch-all alternation.
type OrderCounter interface {
	CountByShippingState(ctx context.Context, state string) (int64, error)
}

// Resolver derives the four-character series code under which a line
// item's serials are sequenced. Resolution never fails: every input
// combination degrades to some valid code rather than blocking checkout.
type Resolver struct {
	orders OrderCounter
	logger *slog.Logger
}

// NewResolver constructs Resolver.
func NewResolver(orders OrderCounter, logger *slog.Logger) *Resolver {
	return &Resolver{orders: orders, logger: logger}
}

// Resolve picks the series code for one line item, in priority order:
// a well-formed buyer reference code, then the shipping state/district
// tables, with the catch-all state alternating between two fixed series.
func (r *Resolver) Resolve(ctx context.Context, item model.OrderItem, shipping model.ShippingSnapshot) string {
	if code, ok := codeFromReference(item.ReferenceCode); ok {
		return code
	}

	state := strings.TrimSpace(shipping.State)
	if state == "" {
		return DefaultSeriesCode
	}

	if strings.EqualFold(state, CatchAllState) {
		return r.catchAllSeries(ctx)
	}

	sc := stateCode(state)
	return sc + districtCode(sc, shipping.District)
}

// codeFromReference accepts the first four characters of the reference
// code verbatim when they look like a series code already.
func codeFromReference(ref string) (string, bool) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if len(ref) < 4 {
		return "", false
	}
	head := ref[:4]
	if referenceCodePattern.MatchString(head) {
		return head, true
	}
	return "", false
}

// catchAllSeries alternates per order: the Nth catch-all order gets the
// odd series when N is odd, the even series otherwise. A failed count is
// logged and treated as zero so resolution still produces a code.
func (r *Resolver) catchAllSeries(ctx context.Context) string {
	var count int64
	if r.orders != nil {
		n, err := r.orders.CountByShippingState(ctx, CatchAllState)
		if err != nil {
			r.logger.Warn("catch-all order count failed, assuming first",
				slog.String("error", err.Error()))
		} else {
			count = n
		}
	}

	ordinal := count + 1
	if ordinal%2 == 1 {
		return catchAllSeriesOdd
	}
	return catchAllSeriesEven
}
