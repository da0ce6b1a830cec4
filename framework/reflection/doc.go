// Package reflection describes classes, functions and methods in a shape the
// container can autowire.
//
// Go's reflect package knows a function's parameter types and whether it is
// variadic, but it does not keep parameter names, default values or
// nullability, and it cannot look a type up by name. A Table fills that gap:
// every class the container may construct is declared once, with its
// constructor, instance methods and static methods.
//
//	classes := reflection.NewTable(
//	    reflection.MustClass[Logger](),                  // interface, not instantiable
//	    reflection.MustClass[*FileLogger](),             // no constructor
//	    reflection.MustClass[*Mailer](
//	        reflection.Constructor(NewMailer,
//	            reflection.Arg("logger"),
//	            reflection.Arg("retries", reflection.Default(3)),
//	        ),
//	        reflection.Method("Send", reflection.Arg("to")),
//	        reflection.StaticMethod("Make", MakeMailer, reflection.Arg("host")),
//	    ),
//	)
//
// Class identifiers are package-qualified type names with pointers stripped,
// see KeyOf.
package reflection
