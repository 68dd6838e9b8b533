package engine

import "strings"

// Static pattern dictionaries. Built once at init, read-only afterward.

// turkishProfanity and englishProfanity feed both the evasion-resistant
// regex pass and the exact-token pass. Entries are stored lowercase with
// native diacritics; the token pass compares against folded forms.
var turkishProfanity = []string{
	"orospu",
	"piç",
	"amcık",
	"amk",
	"aq",
	"oç",
	"sik",
	"siktir",
	"yarrak",
	"ibne",
	"pezevenk",
	"kahpe",
	"kaltak",
	"yavşak",
	"şerefsiz",
	"salak",
	"aptal",
	"gerizekalı",
	"mal",
	"dangalak",
	"ahmak",
	"hıyar",
	"öküz",
}

var englishProfanity = []string{
	"fuck",
	"fucker",
	"motherfucker",
	"shit",
	"bitch",
	"bastard",
	"asshole",
	"dick",
	"cunt",
	"whore",
	"slut",
	"prick",
	"wanker",
	"idiot",
	"stupid",
	"moron",
	"dumbass",
	"jerk",
}

// Severe sub-lists escalate a hit from High to Critical.
var severeTurkish = map[string]struct{}{
	"orospu": {},
	"piç":    {},
	"amcık":  {},
	"sik":    {},
	"siktir": {},
	"yarrak": {},
	"kahpe":  {},
	"amk":    {},
	"oç":     {},
}

var severeEnglish = map[string]struct{}{
	"fuck":         {},
	"fucker":       {},
	"motherfucker": {},
	"cunt":         {},
	"whore":        {},
	"slut":         {},
}

// leetSubstitutes maps each base letter to the characters commonly used in
// its place. The v->u substitution for English is intentionally absent;
// "fvck" slipping through is a known limitation of the rule set.
var leetSubstitutes = map[rune][]rune{
	'a': {'4', '@', 'α', 'а', 'ä'},
	'b': {'8', 'ß'},
	'c': {'ç', '('},
	'e': {'3', '€', 'е'},
	'g': {'ğ', '9', '6'},
	'i': {'1', '!', 'ı', 'í', '|'},
	'l': {'1', '|'},
	'o': {'0', 'ö', 'о'},
	's': {'5', '$', 'ş'},
	't': {'7', '+'},
	'u': {'ü', 'û'},
	'y': {'¥'},
	'z': {'2'},
}

// leetFold reverses the substitution table for severity lookups on matched
// text. Built at init from leetSubstitutes.
var leetFold = func() map[rune]rune {
	m := make(map[rune]rune, 32)
	for base, subs := range leetSubstitutes {
		for _, s := range subs {
			if _, taken := m[s]; !taken {
				m[s] = base
			}
		}
	}
	return m
}()

// turkishFold maps Turkish-specific letters onto their ASCII bases.
var turkishFold = strings.NewReplacer(
	"ı", "i", "İ", "i",
	"ğ", "g", "Ğ", "g",
	"ü", "u", "Ü", "u",
	"ş", "s", "Ş", "s",
	"ö", "o", "Ö", "o",
	"ç", "c", "Ç", "c",
)

// turkishLetters triggers language detection on sight.
const turkishLetters = "ğüşöçıĞÜŞÖÇİ"

// turkishFunctionWords is the fallback language signal for text written
// without diacritics.
var turkishFunctionWords = map[string]struct{}{
	"ve":    {},
	"bir":   {},
	"bu":    {},
	"ile":   {},
	"için":  {},
	"icin":  {},
	"çok":   {},
	"cok":   {},
	"ama":   {},
	"gibi":  {},
	"daha":  {},
	"ben":   {},
	"sen":   {},
	"biz":   {},
	"siz":   {},
	"değil": {},
	"degil": {},
	"var":   {},
	"yok":   {},
	"evet":  {},
	"hayır": {},
	"şu":    {},
	"ne":    {},
}

// digitWords maps folded spelled-out digits (both languages) to their
// value. Tokens are folded before lookup, so "üç" arrives as "uc".
var digitWords = map[string]int{
	"sifir": 0, "bir": 1, "iki": 2, "uc": 3, "dort": 4,
	"bes": 5, "alti": 6, "yedi": 7, "sekiz": 8, "dokuz": 9,
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
}

// spelledDigitRunMin is the minimum run of consecutive digit-word tokens
// reported as a spelled-out phone number. Shorter runs stay silent so that
// ordinary prose with a few numerals does not trip the rule.
const spelledDigitRunMin = 7

// defaultReservedHandles are the platform's own social handles, exempt
// from the @handle heuristic.
var defaultReservedHandles = []string{"travelmatch"}

type categoryText struct {
	tr string
	en string
}

// violationMessages holds per-category user-facing messages. Both strings
// ride on every violation regardless of the active language.
var violationMessages = map[string]categoryText{
	"bad_word": {
		tr: "Mesajınız uygunsuz ifadeler içeriyor",
		en: "Your message contains inappropriate language",
	},
	"phone_number": {
		tr: "Telefon numarası paylaşımı yasaktır",
		en: "Sharing phone numbers is not allowed",
	},
	"pii": {
		tr: "Kişisel bilgi paylaşımı tespit edildi",
		en: "Personal information detected",
	},
	"spam": {
		tr: "Spam içerik tespit edildi",
		en: "Spam content detected",
	},
	"external_contact": {
		tr: "Harici iletişim bilgisi paylaşımı yasaktır",
		en: "Sharing external contact details is not allowed",
	},
}

// categorySuggestions holds per-category guidance, deduplicated by
// category and localized by the active language.
var categorySuggestions = map[string]categoryText{
	"bad_word": {
		tr: "Lütfen saygılı bir dil kullanın.",
		en: "Please use respectful language.",
	},
	"phone_number": {
		tr: "Telefon numaranızı paylaşmak yerine uygulama içi mesajlaşmayı kullanın.",
		en: "Use in-app messaging instead of sharing your phone number.",
	},
	"pii": {
		tr: "Kimlik, kart veya IBAN gibi kişisel bilgilerinizi asla paylaşmayın.",
		en: "Never share personal details such as ID, card or IBAN numbers.",
	},
	"spam": {
		tr: "Promosyon ve reklam içeriği paylaşmayın.",
		en: "Avoid promotional or advertising content.",
	},
	"external_contact": {
		tr: "İletişimi platform içinde tutun.",
		en: "Keep the conversation on the platform.",
	},
}
