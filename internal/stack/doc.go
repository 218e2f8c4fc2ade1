// Package stack implements composable request-action stacking: independently
// authored behaviors (session management, authorization, response templating,
// asynchronous enrichment) are mixed onto a controller action in an explicit
// order, each contributing pre-processing, post-processing, and cleanup
// around a shared request.
//
// # Elements and Chains
//
// A behavior is an Element with three hooks. Proceed wraps the rest of the
// chain and may augment the context, short-circuit, or translate errors.
// OnSuccess and OnFailure release whatever Proceed acquired, and run after
// the whole chain has completed, in the reverse of stacking order.
//
//	chain := stack.NewChain(
//	    elements.NewRequestID(),
//	    elements.NewDBSession(provider, logger),
//	    elements.NewAuthorize(authorizer, logger),
//	)
//	action := stack.NewAction(chain, &stack.ActionConfig{Logger: logger})
//
// # Running an Action
//
// Run seeds the attribute bag, executes the composed chain with the business
// logic as the terminal continuation, and then drives the matching cleanup
// pass exactly once, no matter how many times an element invoked its
// continuation or where the chain stopped:
//
//	out, err := action.Run(ctx, req,
//	    []stack.Seed{stack.SeedValue(elements.RequiredAuthorityKey, domain.AuthorityAdmin)},
//	    func(c stack.Context) (any, error) {
//	        user, err := stack.Get(c, elements.UserKey)
//	        if err != nil {
//	            return nil, err
//	        }
//	        return "hello " + user.Name, nil
//	    })
//
// # Attributes
//
// Per-request state lives in the context's attribute bag, never on an
// element: one element instance is shared across all requests. Attributes
// are typed via Key[T] and identity-keyed, so two keys with the same name
// are distinct slots. Bags are extended copy-on-write; a context handed to
// an inner element is never mutated by an outer one.
package stack
