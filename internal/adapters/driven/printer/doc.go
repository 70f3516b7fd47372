// Package printer provides print surfaces for printable invoice documents.
//
// BrowserSink hands a temporary HTML file to the platform browser, which
// opens its print dialog once the page has loaded.
package printer
