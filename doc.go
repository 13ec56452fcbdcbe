// Package fpstore is an in-memory chemical fingerprint store with Tanimoto
// similarity queries.
//
// Named documents are built once from compound corpora (ChEMBL dumps,
// ChEMBL SQLite releases, SMILES files) and queried many times. Each
// document holds one fixed-width fingerprint per compound, packed into a
// flat word matrix; a query fingerprints a structure and scans the whole
// document, returning every compound whose Tanimoto score reaches the
// cutoff.
//
// # Quick Start
//
//	ctx := context.Background()
//	db, err := fpstore.Open(ctx, []registry.Spec{{
//	    Name:    "chembl",
//	    Kind:    "ECFP4",
//	    NBits:   2048,
//	    Locator: "/data/chembl_33_chemreps.txt.gz",
//	    Source:  "Chembl",
//	}}, fpstore.WithGenerator(generator.NewExec("obabel-fp")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	hits, _ := db.Query(ctx, "chembl", "CC(=O)Oc1ccccc1C(=O)O", 0.7)
//	for id, score := range hits {
//	    fmt.Println(id, score)
//	}
//
// Querying an unknown document returns an empty result, not an error; use
// DB.Document to distinguish a missing document.
//
// # Fluent Search
//
//	top, err := db.Search("chembl").
//	    Structure("c1ccccc1O").
//	    Cutoff(0.5).
//	    Top(10).
//	    Execute(ctx)
//
// # Storage
//
// Corpus locators are resolved by a blobstore.Router: local paths are
// memory-mapped, and S3 or MinIO stores can be registered for object
// storage. Compressed corpora (.gz, .zst, .lz4, .xz) are decompressed
// while streaming and an optional BLAKE3 checksum is verified.
package fpstore
