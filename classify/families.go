package classify

// Format family tables, precompiled once at package init and never mutated
// afterward — safe to share across goroutines without locking.
//
// Membership is by exact format-name token (the alphabetic prefix before any
// width/decimal digits), not substring "starts with" matching: DATETIME and
// DATE are distinct tokens, so DATETIME must not be found in dateFamilies.
//
// The lists below hold 91 format names (68 Date, 10 Time, 13 DateTime),
// covering the commonly used Date/Time/DateTime formats plus the
// international and ISO 8601 variants.
var dateFamilies = map[string]bool{
	"DATE": true, "DAY": true, "DDMMYY": true, "DDMMYYB": true, "DDMMYYC": true,
	"DDMMYYD": true, "DDMMYYN": true, "DDMMYYP": true, "DDMMYYS": true, "DOWNAME": true,
	"JULDAY": true, "JULIAN": true, "MMDDYY": true, "MMDDYYB": true, "MMDDYYC": true,
	"MMDDYYD": true, "MMDDYYN": true, "MMDDYYP": true, "MMDDYYS": true, "MMYY": true,
	"MMYYC": true, "MMYYD": true, "MMYYN": true, "MMYYP": true, "MMYYS": true,
	"MONNAME": true, "MONTH": true, "MONYY": true, "NENGO": true, "PDJULG": true,
	"PDJULI": true, "QTR": true, "QTRR": true, "WEEKDATE": true, "WEEKDATX": true,
	"WEEKDAY": true, "WEEKU": true, "WEEKV": true, "WEEKW": true, "WORDDATE": true,
	"WORDDATX": true, "YEAR": true, "YYMM": true, "YYMMC": true, "YYMMD": true,
	"YYMMDD": true, "YYMMDDB": true, "YYMMDDC": true, "YYMMDDD": true, "YYMMDDN": true,
	"YYMMDDP": true, "YYMMDDS": true, "YYMMN": true, "YYMMP": true, "YYMMS": true,
	"YYMON": true, "YYQ": true, "YYQC": true, "YYQD": true, "YYQN": true,
	"YYQP": true, "YYQS": true, "YYQR": true, "E8601DA": true, "B8601DA": true,
	"IS8601DA": true, "MINGUO": true, "YYMMDDX": true,
}

var timeFamilies = map[string]bool{
	"TIME": true, "TOD": true, "HHMM": true, "HOUR": true, "MMSS": true,
	"E8601TM": true, "B8601TM": true, "IS8601TM": true, "E8601LZ": true, "B8601LZ": true,
}

var dateTimeFamilies = map[string]bool{
	"DATETIME": true, "DATEAMPM": true, "MDYAMPM": true, "E8601DT": true,
	"B8601DT": true, "IS8601DT": true, "E8601LX": true, "B8601LX": true,
	"DTDATE": true, "DTMONYY": true, "DTWKDATX": true, "DTYEAR": true, "DTYYQC": true,
}
