package content

import "blog/internal/models"

const PageSize = 5

type Page struct {
	Posts   []models.Post
	Number  int
	HasPrev bool
	HasNext bool
}

// Prev and Next are the neighbouring page numbers, for link rendering.
func (p Page) Prev() int { return p.Number - 1 }
func (p Page) Next() int { return p.Number + 1 }

// Paginate slices posts into 1-indexed pages of PageSize. Numbers below 1 are
// treated as 1; numbers past the last page yield an empty page rather than an
// error, so hand-edited URLs degrade gracefully.
func Paginate(posts []models.Post, number int) Page {
	if number < 1 {
		number = 1
	}
	last := (len(posts) + PageSize - 1) / PageSize
	start := (number - 1) * PageSize
	if start > len(posts) {
		start = len(posts)
	}
	end := start + PageSize
	if end > len(posts) {
		end = len(posts)
	}
	return Page{
		Posts:   posts[start:end],
		Number:  number,
		HasPrev: number > 1,
		HasNext: number < last,
	}
}
