// Retrieval of public account and community data from the upstream platform's JSON endpoints.
//
// The Client fetches an account together with its recent posts and comments, or a community together with its rules, issuing the requests for each in parallel. Failures of the secondary listings (posts, comments, rules) are logged and degrade to empty lists; failure of the primary record aborts the fetch.
package fetch
