// Package http holds the request and response helpers handed to route
// actions.
//
//	func (c *UserController) Store(input *http.Request, w stdhttp.ResponseWriter) {
//	    var u User
//	    if err := input.Bind(&u); err != nil {
//	        http.NewResponse(w).BadRequest(err.Error())
//	        return
//	    }
//	    http.NewResponse(w).Created(c.repo.Save(u))
//	}
package http
