package numeral

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrIncompleteLexicon is returned when a lexicon lacks a key the Indian
// scale decomposition can reach.
var ErrIncompleteLexicon = errors.New("numeral lexicon is incomplete")

// Lexicon maps a canonical digit string ("0".."99", "100", "1000",
// "100000", "10000000") to its word.
type Lexicon map[string]string

// HindiLexicon is the romanised Hindi lexicon used by Cardinal.
var HindiLexicon = Lexicon{
	"0":  "zero",
	"1":  "ek",
	"2":  "do",
	"3":  "teen",
	"4":  "char",
	"5":  "paanch",
	"6":  "che",
	"7":  "saat",
	"8":  "aath",
	"9":  "nau",
	"10": "das",
	"11": "gyarah",
	"12": "barah",
	"13": "terah",
	"14": "chaudah",
	"15": "pandrah",
	"16": "solah",
	"17": "satrah",
	"18": "atharah",
	"19": "unnees",
	"20": "bees",
	"21": "ikkees",
	"22": "baaes",
	"23": "teyees",
	"24": "chaubees",
	"25": "pachees",
	"26": "chhabbees",
	"27": "sattaees",
	"28": "athaees",
	"29": "unattees",
	"30": "tees",
	"31": "ikattees",
	"32": "battees",
	"33": "taintees",
	"34": "chautees",
	"35": "paintees",
	"36": "chhattees",
	"37": "saintees",
	"38": "adtees",
	"39": "untaalees",
	"40": "chalees",
	"41": "iktaalees",
	"42": "bayaalees",
	"43": "taintaalees",
	"44": "chauvaalees",
	"45": "paintaalees",
	"46": "chhiyaalees",
	"47": "saintaalees",
	"48": "adtaalees",
	"49": "unchaas",
	"50": "pachas",
	"51": "ikyaavan",
	"52": "baavan",
	"53": "tirpan",
	"54": "chauvan",
	"55": "pachpan",
	"56": "chhappan",
	"57": "sattaavan",
	"58": "atthaavan",
	"59": "unsath",
	"60": "saath",
	"61": "iksath",
	"62": "baasath",
	"63": "tirsath",
	"64": "chausath",
	"65": "painsath",
	"66": "chhiyaasath",
	"67": "satsath",
	"68": "adsath",
	"69": "unhattar",
	"70": "sattar",
	"71": "ikhattar",
	"72": "bahattar",
	"73": "tihattar",
	"74": "chauhattar",
	"75": "pachhattar",
	"76": "chhihattar",
	"77": "satattar",
	"78": "athhattar",
	"79": "unyaasi",
	"80": "assi",
	"81": "ikyaasi",
	"82": "bayaasi",
	"83": "tiraasi",
	"84": "chauraasi",
	"85": "pachaasi",
	"86": "chhiyaasi",
	"87": "sataasi",
	"88": "athaasi",
	"89": "navaasi",
	"90": "navve",
	"91": "ikyaanve",
	"92": "baanve",
	"93": "tiraanve",
	"94": "chauraanve",
	"95": "pachaanve",
	"96": "chhiyaanve",
	"97": "sattaanve",
	"98": "atthaanve",
	"99": "ninyaanve",

	"100":      "sau",
	"1000":     "hazaar",
	"100000":   "lakh",
	"10000000": "crore",
}

// OrdinalSuffixes holds the irregular ordinals 1..10. Larger ranks take
// OrdinalSuffix after the cardinal.
var OrdinalSuffixes = map[string]string{
	"1":  "pehla",
	"2":  "doosra",
	"3":  "teesra",
	"4":  "chautha",
	"5":  "paanchva",
	"6":  "chatha",
	"7":  "saatva",
	"8":  "aathva",
	"9":  "nauva",
	"10": "dasva",
}

// OrdinalSuffix is appended to the cardinal of ranks above 10.
const OrdinalSuffix = "va"

// PointWord separates the integer and fractional parts of a decimal.
const PointWord = "point"

// CurrencyUnit names the main and fractional unit of a currency.
type CurrencyUnit struct {
	Code    string
	Main    string
	Decimal string
	Symbol  string
}

// DefaultCurrency is used when an amount carries no recognisable unit.
const DefaultCurrency = "INR"

// Currencies are the units the numeral engine can name.
var Currencies = map[string]CurrencyUnit{
	"INR": {Code: "INR", Main: "rupaye", Decimal: "paise", Symbol: "₹"},
	"USD": {Code: "USD", Main: "dollar", Decimal: "cents", Symbol: "$"},
	"GBP": {Code: "GBP", Main: "pound", Decimal: "pence", Symbol: "£"},
}

var currencyOrder = []string{"INR", "USD", "GBP"}

// scale is one step of the Indian numbering system.
type scale struct {
	value uint64
	key   string
}

// indianScales is ordered most significant first.
var indianScales = []scale{
	{value: 10000000, key: "10000000"},
	{value: 100000, key: "100000"},
	{value: 1000, key: "1000"},
	{value: 100, key: "100"},
}

func (l Lexicon) word(key string) (string, error) {
	w, ok := l[key]
	if !ok {
		return "", fmt.Errorf("%w: no entry for %q", ErrIncompleteLexicon, key)
	}
	return w, nil
}

// Validate reports whether every key reachable by the decomposition exists:
// zero, the ones, the decades, and each scale word.
func (l Lexicon) Validate() error {
	keys := []string{"0"}
	for i := 1; i <= 9; i++ {
		keys = append(keys, strconv.Itoa(i), strconv.Itoa(i*10))
	}
	for _, s := range indianScales {
		keys = append(keys, s.key)
	}
	for _, k := range keys {
		if _, err := l.word(k); err != nil {
			return err
		}
	}
	return nil
}
