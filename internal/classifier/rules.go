package classifier

// Directional keywords, matched case-insensitively against the message body.
// The earliest match in the body decides the direction; a message matching
// neither list is not a financial alert.
var creditKeywords = []string{
	"credited",
	"credit alert",
	"received",
	"inflow",
	"salary",
	"deposit",
}

var debitKeywords = []string{
	"debited",
	"debit alert",
	"spent",
	"withdrawn",
	"withdrawal",
	"purchase",
	"pos ",
	"charged",
	"transfer to",
}

// institutionAlias maps a lowercase alias string found in sender IDs or
// message bodies to a canonical institution name. Held as an ordered slice so
// matching is deterministic when a body mentions several institutions.
type institutionAlias struct {
	alias string
	name  string
}

// Kept as data so adding a bank never touches classification logic.
var institutionAliases = []institutionAlias{
	{"gtbank", "GTBank"},
	{"gtb", "GTBank"},
	{"guaranty", "GTBank"},
	{"accessbank", "Access Bank"},
	{"access bank", "Access Bank"},
	{"zenith", "Zenith Bank"},
	{"uba", "UBA"},
	{"firstbank", "First Bank"},
	{"first bank", "First Bank"},
	{"kuda", "Kuda"},
	{"opay", "OPay"},
	{"palmpay", "PalmPay"},
	{"moniepoint", "Moniepoint"},
	{"stanbic", "Stanbic IBTC"},
	{"fidelity", "Fidelity Bank"},
	{"fcmb", "FCMB"},
	{"sterling", "Sterling Bank"},
	{"wema", "Wema Bank"},
	{"alat", "Wema Bank"},
}
