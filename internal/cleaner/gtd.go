// GTD schema constants: the fixed column lists driving the cleaning pass.
// They are package-level variables (not inline literals) so tests and callers
// can override individual lists without touching the pipeline logic.
package cleaner

// PlaceholderTokens are case-insensitive text values that are synonyms for
// "missing" in text columns. The empty string is included for completeness;
// the parser already maps empty cells to nil.
var PlaceholderTokens = []string{"unknown", "not applicable", "unk", "none", "nan", ""}

// MissingLiterals are renderings of NA/NaN that are treated as missing in
// every column, including declared-numeric ones.
var MissingLiterals = []string{"<na>", "nan"}

// BinaryColumns hold 0/1 (or small integer) codes and are coerced to numeric
// early; unparseable values become missing without dropping the row.
var BinaryColumns = []string{
	"claimed", "ishostkid", "INT_ANY", "INT_MISC", "INT_IDEO", "INT_LOG",
	"property", "doubtterr", "vicinity",
}

// NumericColumns are declared-numeric fields checked for integrity; offending
// raw values are quarantined before coercion.
var NumericColumns = []string{
	"iyear", "imonth", "iday", "nkill", "nkillus", "nkillter",
	"nwound", "nwoundus", "nwoundte", "propvalue", "nperps",
	"nperpcap", "ransomamt", "ransomamtus", "ransompaid", "ransompaidus",
}

// FillUnknownColumns are categorical fields whose missing values are replaced
// with the literal "unknown" after the geolocation filter.
var FillUnknownColumns = []string{"city", "provstate"}

// RenameMap maps raw GTD field codes to warehouse-friendly names.
var RenameMap = map[string]string{
	"iyear":    "year",
	"imonth":   "month",
	"iday":     "day",
	"nkill":    "num_killed",
	"nwound":   "num_wounded",
	"nkillus":  "num_us_killed",
	"nwoundus": "num_us_wounded",
	"nkillter": "num_terrorists_killed",
	"nwoundte": "num_terrorists_wounded",
}

// DropColumns are free-text, narrative, or redundant fields removed outright.
// Absent entries are ignored.
var DropColumns = []string{
	"summary", "motive", "addnotes", "propcomment", "weapdetail",
	"target1", "target2", "target3", "corp1", "corp2", "corp3",
	"claimmode_txt", "claimmode2", "claimmode3",
	"scite1", "scite2", "scite3", "approxdate", "resolution", "ransomnote",
	"gsubname", "gsubname2", "gsubname3", "related", "location",
	"vicinity", "specificity",
	"dbsource", "INT_LOG", "INT_IDEO", "INT_MISC", "INT_ANY",
	"attacktype2", "attacktype2_txt", "attacktype3", "attacktype3_txt",
}

// AlignmentPair names a numeric code column and its human-readable label
// column; each code value must map to exactly one label.
type AlignmentPair struct {
	Code  string
	Label string
}

// AlignmentPairs are the code/label pairs checked for consistency.
var AlignmentPairs = []AlignmentPair{
	{"country", "country_txt"},
	{"region", "region_txt"},
	{"attacktype1", "attacktype1_txt"},
	{"targtype1", "targtype1_txt"},
	{"targsubtype1", "targsubtype1_txt"},
	{"weaptype1", "weaptype1_txt"},
	{"weapsubtype1", "weapsubtype1_txt"},
}

// DefaultSparseThreshold is the missing-value fraction at or above which a
// column is dropped.
const DefaultSparseThreshold = 0.8
