package inspect

// indexHTML is the inspection page. It renders /values once, then keeps
// the table current from WebSocket frames.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>bind inspector</title>
<style>
  body { font-family: ui-monospace, monospace; margin: 2rem; background: #111; color: #ddd; }
  h1 { font-size: 1rem; color: #8ab4f8; }
  table { border-collapse: collapse; min-width: 24rem; }
  th, td { text-align: left; padding: 0.3rem 1rem 0.3rem 0; border-bottom: 1px solid #333; }
  th { color: #888; font-weight: normal; }
  .const { color: #777; }
  #status { color: #666; font-size: 0.8rem; }
</style>
</head>
<body>
<h1>bind inspector</h1>
<table>
  <thead><tr><th>name</th><th>value</th></tr></thead>
  <tbody id="rows"></tbody>
</table>
<p id="status">connecting&hellip;</p>
<script>
(function() {
  var rows = document.getElementById('rows');
  var status = document.getElementById('status');

  function render(values) {
    rows.innerHTML = '';
    values.forEach(function(v) {
      var tr = document.createElement('tr');
      if (v.constant) tr.className = 'const';
      var name = document.createElement('td');
      name.textContent = v.name;
      var val = document.createElement('td');
      val.textContent = JSON.stringify(v.value);
      tr.appendChild(name);
      tr.appendChild(val);
      rows.appendChild(tr);
    });
  }

  fetch('values').then(function(r) { return r.json(); }).then(render);

  var proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
  var base = location.pathname.replace(/\/$/, '');
  var ws = new WebSocket(proto + '//' + location.host + base + '/ws');
  ws.onopen = function() { status.textContent = 'live'; };
  ws.onmessage = function(ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === 'values') render(msg.values);
  };
  ws.onclose = function() { status.textContent = 'disconnected'; };
})();
</script>
</body>
</html>
`
