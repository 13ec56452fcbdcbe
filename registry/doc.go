// Package registry loads named fingerprint documents from corpus
// specifications.
//
// Load validates every Spec, builds the documents concurrently and publishes
// them in an immutable Registry. Lookups never lock: a Registry is not
// modified after Load returns.
//
// Supported sources:
//
//	Chembl        ChEMBL chemreps TSV (chembl_id, canonical_smiles)
//	ChemblSQLite  ChEMBL SQLite release
//	SMILES        .smi text, "<structure> <id>" per line
//
// Zinc is recognized but has no built-in loader; specs naming it fail with
// *UnsupportedSourceError unless a loader is installed with WithLoader.
package registry
