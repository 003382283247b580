package entity

// PageContent is a rendered page as seen by the browser tools.
type PageContent struct {
	URL   string
	Title string
	HTML  string
	Text  string
}

type Screenshot struct {
	Data   []byte
	Format string
	Width  int
	Height int
}
