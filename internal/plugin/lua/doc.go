// Package lua runs decorator strategies written in Lua.
//
// A strategy script defines a global function
//
//	function strategy(text, type, key, data)
//	  -- return a list of {first, last} pairs
//	end
//
// that receives the text, type, key and data of one block and returns the
// ranges to decorate. Positions follow string.find: 1-based byte indexes,
// inclusive at both ends, so a script can return string.find results
// directly:
//
//	name = "hashtag"
//	props = { color = "blue" }
//
//	function strategy(text)
//	  local out, init = {}, 1
//	  while true do
//	    local s, e = string.find(text, "#%w+", init)
//	    if not s then break end
//	    out[#out + 1] = { s, e }
//	    init = e + 1
//	  end
//	  return out
//	end
//
// The optional globals name and props label the strategy when it joins a
// composite decorator.
//
// # Sandbox
//
// Scripts run with only the base, table, string and math libraries. The
// functions that load code (dofile, loadfile, load, loadstring, require)
// are removed, and every call runs under a timeout.
//
// # Concurrency
//
// A gopher-lua state is single-threaded. State serializes every call with a
// mutex, so one Strategy may be shared by concurrent decorator runs.
package lua
