// Package main provides the entry point for the relatorio CLI.
//
// relatorio works with the maintenance report pages from the command line:
// it previews the status a report form derives from its progress and
// images, lists the equipment of a location, and posts progress updates.
//
// Usage:
//
//	relatorio status --progress 40 --image vazamento.jpg
//	relatorio equipment 7
//	relatorio update /reports/12/ --progress 100 --description "Reator trocado"
//
// See --help for all available options.
package main

// main is the entry point for relatorio.
func main() {
	Execute()
}
