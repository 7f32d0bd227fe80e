// Package decoder implements the column-decoding stages that rewrite
// heterogeneous register exports into the canonical schema. Every stage is
// gated on column presence: a missing column is a no-op branch, never an
// error. A stage returning a nil table is the one fatal signal, handled by
// the orchestrator.
package decoder

import (
	"strings"
	"unicode"

	"github.com/Raumberg/XLmaniac/internal/table"
)

// Decoder is a stateless transformation stage over one table. Internal
// failures are logged and skipped; Decode returns nil only when the table
// was lost entirely.
type Decoder interface {
	Name() string
	Decode(t *table.Table) *table.Table
}

// Canonical person columns and their raw input variants.
const (
	ColFirstName = "first_name"
	ColSurname   = "surname"
	ColLastName  = "last_name"
	ColAddedName = "added_name"
	ColPostfix   = "postfix_name"
	ColSex       = "sex"
	ColBirthDate = "birth_date"
	ColRegAddr   = "reg_addr"
	ColHomeAddr  = "home_addr"
	ColMail      = "mail"
	ColMails     = "mails"
	ColPosition  = "position"
	ColWork      = "work"

	ColFioFull = "fio_full"
	ColIfoFull = "ifo_full"
)

// Canonical passport columns and their raw input variants.
const (
	ColPassportSeries = "passport_series"
	ColPassportNum    = "passport_num"
	ColPassportOrg    = "passport_org"
	ColPassportDate   = "passport_date"
	ColDoctype        = "doctype"
	ColRegion         = "region"

	ColPassport     = "passport"
	ColPassportFull = "passport_full"
	ColPassportDiv  = "passport_div"
)

// Debt columns.
const (
	ColCreditStartDate = "credit_start_date"
	ColCreditEndDate   = "credit_end_date"

	ColTotalDebt          = "total_debt"
	ColTotalSum           = "total_sum"
	ColCurrentDebt        = "current_debt"
	ColCurrentPercent     = "current_percent"
	ColCurrentDebtCalc    = "current_debt_calc"
	ColCurrentPercentCalc = "current_percent_calc"
	ColOverdueDebt        = "overdue_debt"
	ColOverduePercent     = "overdue_percent"
	ColComission          = "comission"
	ColFines              = "fines"
	ColFinalCurrent       = "fcd"
	ColFinalCurrentPct    = "fcp"
	ColStateDuty          = "gp"
)

// Register columns.
const (
	ColScheme       = "scheme"
	ColExtend       = "extend"
	ColClientID     = "client_id"
	ColCreditID     = "credit_id"
	ColOuterID      = "outer_id"
	ColProduct      = "product"
	ColProductGroup = "product_group"
	ColProductName  = "product_name"
	ColCurrency     = "currency"
	ColPlacement    = "placement"
	ColRegName      = "reg_name"
	ColRegDate      = "reg_date"

	// POST sheet columns.
	ColID          = "id"
	ColAddress     = "address"
	ColAddressType = "address_type"
	ColPhoneType   = "phone_type"
)

// nullSentinels are the literal values heterogeneous exports use for
// "no value" in text columns.
var nullSentinels = map[string]struct{}{
	"null":  {},
	"NULL":  {},
	"Null":  {},
	"None":  {},
	"nan":   {},
	" null": {},
}

func isNullSentinel(s string) bool {
	_, ok := nullSentinels[s]
	return ok
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}

// leftPad prepends zeroes until the string reaches the requested length.
func leftPad(s string, length int) string {
	if len(s) >= length {
		return s
	}

	return strings.Repeat("0", length-len(s)) + s
}
