// Package wordlist extracts the accepted-word list from the pages of a
// word list PDF: page text is stripped of its running header, date and
// page numbers, split into upper-cased words, and collected into a sorted
// list without duplicates.
//
//	res, err := wordlist.Extract(ctx, src, pages, wordlist.Config{})
//	fmt.Println(len(res.Words), res.Summary())
package wordlist
