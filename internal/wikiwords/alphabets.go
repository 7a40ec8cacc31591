package wikiwords

// Alphabet describes the letter inventory of one language. Vowels is empty
// for languages where a vowel check is not meaningful (Arabic and Urdu
// write without short vowels).
type Alphabet struct {
	Letters string
	Vowels  string
}

// Alphabets holds the strict lowercase letter inventories used to tokenize
// Wikipedia article text. Languages missing from the table fall back to
// unicode.IsLetter tokenization.
var Alphabets = map[string]Alphabet{
	"bg": {Letters: "абвгдежзийклмнопрстуфхцчшщъьюя", Vowels: "аеёиоуъюя"},
	"hr": {Letters: "abcčćdđefghijklmnoprstuvzž", Vowels: "aeiou"},
	"cs": {Letters: "aábcčdďeéěfghchiíjklmnňoópqrřsštťuúůvwxyýzž", Vowels: "aeiouyáéěíóúůý"},
	"da": {Letters: "abcdefghijklmnopqrstuvwxyzæøå", Vowels: "aeiouyæøå"},
	"nl": {Letters: "abcdefghijklmnopqrstuvwxyz", Vowels: "aeiouy"},
	"en": {Letters: "abcdefghijklmnopqrstuvwxyz", Vowels: "aeiouy"},
	"et": {Letters: "abcdefghijklmnopqrsšzžtuvwõäöüxy", Vowels: "aeiouõäöü"},
	"fi": {Letters: "abcdefghijklmnopqrstuvwxyzåäö", Vowels: "aeiouyäöå"},
	"fr": {Letters: "abcdefghijklmnopqrstuvwxyzàâæçéèêëîïôœùûüÿ", Vowels: "aeiouyàâæéèêëîïôœùûüÿ"},
	"de": {Letters: "abcdefghijklmnopqrstuvwxyzäöüß", Vowels: "aeiouäöü"},
	"el": {Letters: "αβγδεζηθικλμνξοπρστυφχψω", Vowels: "αεηιουω"},
	"hu": {Letters: "aábcdeéfghiíjklmnoóöőpqrstuúüűvwxyz", Vowels: "aeiouáéíóöőúüű"},
	"ga": {Letters: "abcdefghijklmnopqrstuvwxyzáéíóú", Vowels: "aeiouáéíóú"},
	"it": {Letters: "abcdefghijklmnopqrstuvwxyzàèéìíîòóùú", Vowels: "aeiouàèéìíîòóùú"},
	"lv": {Letters: "aābcčdeēfgģhiījkķlļmnņoprsštuūvzž", Vowels: "aeiouāēīū"},
	"lt": {Letters: "aąbcčdeęėfghiįyjklmnoprsštuųūvzž", Vowels: "aeiouąęėįųū"},
	"mt": {Letters: "abċdefġgħhijklmnopqrstuuvwxżz", Vowels: "aeiou"},
	"pl": {Letters: "aąbcćdeęfghijklłmnńoópqrsśtuvwxyzźż", Vowels: "aeiouyąęó"},
	"pt": {Letters: "abcdefghijklmnopqrstuvwxyzáâãàçéêíóôõúü", Vowels: "aeiouáâãàéêíóôõúü"},
	"ro": {Letters: "abcdefghijklmnopqrstuvwxyzăâîșşțţ", Vowels: "aeiouăâî"},
	"sk": {Letters: "aáäbcčdďeéfghchiíjklľĺmnňoóôpqrŕsštťuúůvwxyýzž", Vowels: "aeiouyáéíóôúýä"},
	"sl": {Letters: "abcčdefghijklmnoprsštuvzž", Vowels: "aeiou"},
	"es": {Letters: "abcdefghijklmnopqrstuvwxyzáéíñóúü", Vowels: "aeiouáéíóúü"},
	"sv": {Letters: "abcdefghijklmnopqrstuvwxyzåäö", Vowels: "aeiouyåäö"},
	"ar": {Letters: "ابتثجحخدذرزسشصضطظعغفقكلمنهوي"},
	"ru": {Letters: "абвгдеёжзийклмнопрстуфхцчшщъыьэюя", Vowels: "аеёиоуыэюя"},
	"tr": {Letters: "abcçdefgğhıijklmnoöprsştuüvyz", Vowels: "aeıioöuü"},
	"ur": {Letters: "ابتثجچحخدذرڑزژسشصضطظعغفقکگلمنوهیءے"},
}
