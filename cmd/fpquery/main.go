// Command fpquery loads fingerprint documents and runs Tanimoto similarity
// queries against them.
//
//	fpquery -g obabel-fp \
//	    -d name=chembl,kind=ECFP4,nbits=2048,source=Chembl,locator=chembl_33_chemreps.txt.gz \
//	    query chembl 'CC(=O)Oc1ccccc1C(=O)O' --cutoff 0.6
package main

import (
	"github.com/alecthomas/kong"
)

const version = "0.1.0"

// CLI defines the command-line interface for fpquery.
type CLI struct {
	Globals

	Describe DescribeCmd `cmd:"" help:"Load documents and print the document table"`
	Query    QueryCmd    `cmd:"" help:"Run a similarity query against a document"`
	Checksum ChecksumCmd `cmd:"" help:"Print the BLAKE3 checksum of corpus files"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("fpquery"),
		kong.Description("Chemical fingerprint store - Tanimoto similarity search"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
