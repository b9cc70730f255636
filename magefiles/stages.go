//go:build mage

package main

// Scrape runs the full pipeline: search, fetch, and convert.
func Scrape() error {
	return run()
}

// Search lists the templates of every configured catalog page.
func Search() error {
	return run("search")
}

// Fetch downloads the templates without converting them.
func Fetch() error {
	return run("fetch")
}

// Convert turns the downloaded templates into PDFs.
func Convert() error {
	return run("convert")
}
