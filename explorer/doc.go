// Package explorer provides a client for the Hydrachain explorer HTTP API.
//
// The explorer exposes read-only JSON endpoints for blocks, transactions,
// addresses, contracts, tokens and chain statistics, plus two plain text
// endpoints (address balances and raw transactions).
//
// # Architecture
//
//   - URLBuilder: one method per endpoint; URLs is the default implementation
//   - Client: the requester, with a pooled and optionally retrying transport
//   - Paginate: a lazy iterator over any paged endpoint
//   - params: the query parameter sets accepted by the endpoints
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client := explorer.NewClient(logger,
//		explorer.WithTimeout(10*time.Second),
//		explorer.WithRetries(3),
//	)
//
//	block, err := client.BlockByHeight(ctx, 1234)
//
//	for tx, err := range client.AddressTransactionsIter(ctx, address, explorer.TxsAll, "", params.Transactions{}) {
//		if err != nil {
//			return err
//		}
//		fmt.Println(string(tx))
//	}
//
// # Routing endpoints elsewhere
//
// Embed URLs and redefine the endpoints that should go to another server:
//
//	type localTxs struct{ explorer.URLs }
//
//	func (l localTxs) AddressTransactions(address string, _ explorer.TransactionVariant, _ string) string {
//		return "http://localhost:5555/address/" + address
//	}
//
//	client := explorer.NewClient(logger, explorer.WithURLs(localTxs{explorer.DefaultURLs()}))
//
// # Error Handling
//
// Any status other than 200 yields *UnexpectedStatusError. A JSON endpoint
// answering without an application/json content type yields
// *UnexpectedContentTypeError. Transport failures are returned as produced by
// net/http. The client never retries on its own; retries only happen when
// enabled with WithRetries.
//
//	var statusErr *explorer.UnexpectedStatusError
//	if errors.As(err, &statusErr) && statusErr.IsNotFound() {
//		// unknown block
//	}
package explorer
