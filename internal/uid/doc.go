// Package uid implements the identifier engine: it checks, repairs and strips
// the unique identifier attribute (x:Uid by default) of markup elements while
// leaving every other byte of the file as it was.
//
// # Pipeline
//
// Processing a file is a strictly sequential, position-synchronized two-pass
// transform:
//
//	content --Scan--> Document{Sites} --Validate--> classified sites
//	        --Resolve (update only)--> resolved sites
//	        --Rewrite--> new content
//
// Scan records, for every addressable element, the exact 1-based line and
// column where the identifier attribute is or should be inserted. Rewrite then
// replays those coordinates against the original text with a single
// "copy verbatim up to position" primitive, so whitespace, line endings,
// attribute order and quoting survive untouched. The document is never
// re-serialized.
//
// # Sites
//
//	<Window x:Class="App.Main"          site Window: insertion at x:Class, space after
//	        xmlns:x="...xaml">
//	  <Button/>                         site Button: insertion after the name, space before
//	  <Button.Content>...</Button.Content>  property element, ignored
//	  <TextBlock x:Uid="title"/>        site TextBlock: existing value "title"
//	</Window>
//
// # Resolution
//
// New values come from the element's friendly name (Name or x:Name) when it is
// unused, otherwise from a per-element sequence: Button_1, Button_2, ... The
// sequence starts above the largest number already present in the file, so
// generated values never collide with surviving ones. When an inserted
// identifier has no prefix bound to the namespace in scope, one prefix ("x",
// then "x1", "x2", ...) is declared on the root element.
//
// # Usage
//
//	engine, err := uid.NewEngine(uid.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	out, err := engine.Process("Main.xaml", content, markuid.OperationUpdate)
//	if err != nil {
//	    return err // *MalformedDocumentError or *RewriteSynchronizationError
//	}
//	if out.Changed {
//	    // hand out.Content to the transaction package
//	}
package uid
