// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("chembl/"),
//	    s3.WithRegion("us-east-1"),
//	)
//	router.Register("s3://my-bucket/", store)
//
// Blobs are read with ranged GetObject requests; a whole corpus file is
// streamed by a single request.
package s3
