package usecase

import (
	"fmt"

	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/utils"
)

// maxDrawsPerVoucher bounds re-draws on in-batch collisions.
const maxDrawsPerVoucher = 10

// VoucherIssuer produces short voucher codes. Codes are unique within one
// batch; global uniqueness is left to the size of the code space.
type VoucherIssuer struct {
	codeLength int
	generate   func(length int) (string, error)
}

func NewVoucherIssuer(codeLength int) *VoucherIssuer {
	return &VoucherIssuer{
		codeLength: codeLength,
		generate:   utils.GenerateCode,
	}
}

func (v *VoucherIssuer) Issue(count int) ([]entity.Voucher, error) {
	if count <= 0 {
		return nil, fmt.Errorf("voucher count must be positive, got %d", count)
	}

	seen := make(map[string]struct{}, count)
	vouchers := make([]entity.Voucher, 0, count)

	for draws := 0; len(vouchers) < count; draws++ {
		if draws >= count*maxDrawsPerVoucher {
			return nil, fmt.Errorf("could not draw %d unique voucher codes", count)
		}

		code, err := v.generate(v.codeLength)
		if err != nil {
			return nil, fmt.Errorf("generate voucher code: %w", err)
		}
		if _, dup := seen[code]; dup {
			continue
		}

		seen[code] = struct{}{}
		vouchers = append(vouchers, entity.Voucher{VoucherID: code, IsPrint: false})
	}

	return vouchers, nil
}
