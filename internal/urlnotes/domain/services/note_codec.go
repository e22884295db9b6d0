// Package services содержит доменную логику кодирования заметок.
package services

import "strings"

// Маркеры строки-комментария с URL.
const (
	URLCommentPrefix = "<!-- URL: "
	URLCommentSuffix = " -->"
)

// EncodeNote добавляет к содержимому заметки строку-комментарий с URL.
// Ни URL, ни содержимое не экранируются.
func EncodeNote(content, url string) string {
	return URLCommentPrefix + url + URLCommentSuffix + "\n" + content
}

// DecodeNote возвращает содержимое заметки без ведущей строки-комментария.
// Если первая строка не является комментарием с URL, текст возвращается как есть.
func DecodeNote(text string) string {
	first, rest, _ := strings.Cut(text, "\n")
	if !isURLComment(first) {
		return text
	}
	return strings.TrimLeft(rest, "\n")
}

// ExtractURL возвращает URL из ведущей строки-комментария.
func ExtractURL(text string) (string, bool) {
	first, _, _ := strings.Cut(text, "\n")
	if !isURLComment(first) {
		return "", false
	}
	if len(first) < len(URLCommentPrefix)+len(URLCommentSuffix) {
		return "", true
	}
	return strings.TrimSuffix(strings.TrimPrefix(first, URLCommentPrefix), URLCommentSuffix), true
}

// isURLComment допускает пересечение префикса и суффикса: "<!-- URL: -->"
// тоже считается комментарием.
func isURLComment(line string) bool {
	return strings.HasPrefix(line, URLCommentPrefix) && strings.HasSuffix(line, URLCommentSuffix)
}
