// Package storage issues time-limited presigned URLs for objects in an S3 (or
// S3-compatible) bucket and maps between object keys and public object URLs.
//
// Clients upload and download directly against the bucket; this package never
// proxies object bytes.
//
//	store, err := storage.NewS3Storage(ctx, storage.S3Config{
//		Bucket: "avatars",
//		Region: "us-east-1",
//	})
//	key := storage.ProfilePictureKey(user.Sub(), time.Now(), "me.png")
//	upload, err := store.UploadURL(ctx, key, "image/png")
//	// PUT the file to upload.URL, then save store.ObjectURL(key) on the profile.
//
// Upload URLs expire after one hour, read URLs after 24 hours.
package storage
