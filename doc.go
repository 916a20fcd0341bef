package jxsmoln

// Package jxsmoln converts between JSON values and jxsmoln, an XML
// vocabulary that spells every JSON value as an element in one namespace:
//
//	<j:ob xmlns:j="https://github.com/ttelcl/TteLcl.XmlTools/blob/main/jxsmoln/README.md">
//	  <j:prop key="name"><j:str>jx</j:str></j:prop>
//	  <j:prop key="tags"><j:list><j:num>1</j:num><j:true/></j:list></j:prop>
//	</j:ob>
//
// - Decoding walks a forward-only XML cursor (XMLCursor) and builds Values.
// - Encoding walks a forward-only JSON token Source and writes elements to an XMLWriter.
// - Failures are *Error values carrying a stable Code and a JSON Pointer path.
// - A <multi> wrapper holds a sequence of values; see DecodeSequence.
//
// Design policy:
// - Keep only public APIs in the root package; put cursors and writers under internal/.
// - JSON drivers live under source/ and register themselves by name.
// - Tracing is a per-call option (TraceFunc); the package holds no logger.
//
// Typical usage:
//
//	v, err := jxsmoln.Unmarshal(xmlBytes)
//	for v, err := range jxsmoln.DecodeSequence(jxsmoln.XMLReader(r)) { ... }
//
//	err := jxsmoln.EncodeDocument(jxsmoln.JSONReader(r), jxsmoln.NewXMLWriter(w))
//	out, err := jxsmoln.Marshal(jxsmoln.Object(jxsmoln.M("a", jxsmoln.Integer(1))))
