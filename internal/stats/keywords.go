package stats

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// The extraction model hallucinates: it returns keywords that never
// appear in the entry, overly generic category words, and sometimes
// people's names. This file is the only defense against that noise,
// so every rule here must stay deterministic and oracle-independent.

const maxKeywordLen = 10

// Generic or off-topic words that say nothing about the entry.
// Checked by containment, so "일상생활" is rejected too.
var keywordBlacklist = []string{
	"일상", "오늘", "하루", "기분", "감정", "생각", "마음",
	"일기", "내용", "기타", "그냥", "보통",
	"daily", "today", "diary", "mood", "feeling", "thing", "stuff",
	"misc", "general",
}

// Common Korean surnames. A 2-4 character Hangul string starting with
// one of these is treated as a personal name.
var koreanSurnames = []string{
	"김", "이", "박", "최", "정", "강", "조", "윤", "장", "임",
	"한", "오", "서", "신", "권", "황", "안", "송", "전", "홍",
	"유", "고", "문", "양", "손", "배", "백", "허", "남", "심",
}

// Common given names matched exactly (case-insensitive for English).
var commonGivenNames = []string{
	"민준", "서준", "지호", "하준", "지우", "서연", "하은", "민서",
	"지민", "수빈", "예은", "도윤", "시우", "주원", "지아", "은우",
	"james", "john", "michael", "david", "sarah", "emma", "olivia",
	"daniel", "sophia", "emily",
}

var (
	digitsPunctOnly = regexp.MustCompile(`^[\d\s[:punct:]]+$`)
	englishNameForm = regexp.MustCompile(`^[A-Z][a-z]{1,19}$`)
)

// IsValidKeyword reports whether a candidate keyword may be counted.
// Rejects empty/whitespace, strings longer than 10 runes, digit or
// punctuation-only strings, blacklisted generic words, and strings
// that look like personal names.
func IsValidKeyword(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if n := utf8.RuneCountInString(s); n < 1 || n > maxKeywordLen {
		return false
	}
	if digitsPunctOnly.MatchString(s) {
		return false
	}
	lower := strings.ToLower(s)
	for _, banned := range keywordBlacklist {
		if strings.Contains(lower, banned) {
			return false
		}
	}
	if looksLikePersonalName(s) {
		return false
	}
	return true
}

// looksLikePersonalName applies the name heuristics: Hangul strings of
// 2-4 characters led by a known surname, English words in
// Capitalized-then-lowercase form, and exact common given names.
func looksLikePersonalName(s string) bool {
	runes := []rune(s)
	if len(runes) >= 2 && len(runes) <= 4 && isAllHangul(runes) {
		for _, surname := range koreanSurnames {
			if strings.HasPrefix(s, surname) {
				return true
			}
		}
	}
	if englishNameForm.MatchString(s) {
		return true
	}
	lower := strings.ToLower(s)
	for _, name := range commonGivenNames {
		if lower == name {
			return true
		}
	}
	return false
}

func isAllHangul(runes []rune) bool {
	for _, r := range runes {
		if !unicode.Is(unicode.Hangul, r) {
			return false
		}
	}
	return true
}

// OccursIn reports whether the keyword actually appears in the source
// text: a case-insensitive substring match, or, for keywords of two or
// more runes, an approximate containment check against the source's
// whitespace tokens (catches particles glued onto Korean nouns).
func OccursIn(keyword, source string) bool {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" || source == "" {
		return false
	}
	src := strings.ToLower(source)
	if strings.Contains(src, kw) {
		return true
	}
	if utf8.RuneCountInString(kw) < 2 {
		return false
	}
	for _, token := range strings.Fields(src) {
		token = strings.TrimFunc(token, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if utf8.RuneCountInString(token) < 2 {
			continue
		}
		if strings.Contains(token, kw) || strings.Contains(kw, token) {
			return true
		}
	}
	return false
}
