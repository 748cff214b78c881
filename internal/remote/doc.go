// Package remote provides listing.Source implementations.
//
// HTTPSource talks to a content-sources style REST API:
//
//	GET    {base}/repositories/?offset=&limit=&search=&version=&arch=&status=
//	DELETE {base}/repositories/{uuid}/
//	GET    {base}/repository_parameters/
//
// MemorySource keeps repositories in memory and applies filters and
// pagination locally. It backs demo mode and tests.
package remote
