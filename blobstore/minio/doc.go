// Package minio provides a MinIO (and generic S3-compatible) implementation
// of blobstore.Store.
//
//	client, _ := minio.New("localhost:9000", &minio.Options{
//	    Creds: credentials.NewStaticV4(accessKey, secretKey, ""),
//	})
//	router.Register("minio://corpora/", miniostore.NewStore(client, "corpora", ""))
package minio
