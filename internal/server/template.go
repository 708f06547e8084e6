package server

const formHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Laptop Price Predictor</title>
    <meta charset="utf-8">
    <style>
        body { font-family: 'Segoe UI', Arial, sans-serif; margin: 0; padding: 20px; background: #1a1a2e; color: #eee; }
        .container { max-width: 900px; margin: 0 auto; }
        h1 { text-align: center; color: #4fc3f7; }
        .card { background: #16213e; border-radius: 10px; padding: 20px; margin-bottom: 20px; box-shadow: 0 4px 6px rgba(0,0,0,0.3); }
        .card h2 { margin-top: 0; color: #4fc3f7; font-size: 1.1em; border-bottom: 1px solid #2a3f5f; padding-bottom: 8px; }
        .grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(240px, 1fr)); gap: 14px; }
        label { display: block; font-size: 0.85em; color: #aaa; margin-bottom: 4px; }
        select, input { width: 100%; padding: 8px; border-radius: 5px; border: 1px solid #2a3f5f; background: #0f3460; color: #eee; box-sizing: border-box; }
        button { width: 100%; padding: 14px; margin-top: 10px; border: none; border-radius: 8px; background: #4fc3f7; color: #1a1a2e; font-size: 1.1em; font-weight: bold; cursor: pointer; }
        button:hover { background: #81d4fa; }
        .result { background: #1b5e20; border-radius: 10px; padding: 20px; text-align: center; font-size: 1.6em; margin-bottom: 20px; }
        .error { background: #b71c1c; border-radius: 10px; padding: 15px; text-align: center; margin-bottom: 20px; }
        .footer { text-align: center; color: #555; font-size: 0.8em; margin-top: 20px; }
    </style>
</head>
<body>
<div class="container">
    <h1>Laptop Price Predictor</h1>

    {{if .Price}}<div class="result">Estimated Price: <strong>{{.Price}}</strong></div>{{end}}
    {{if .Error}}<div class="error">{{.Error}}</div>{{end}}

    <form method="POST" action="/predict">
        <div class="card">
            <h2>General Specifications</h2>
            <div class="grid">
                <div><label>Company</label>
                    <select name="company">{{range index .Options "Company"}}<option value="{{.}}"{{if eq . $.Spec.Company}} selected{{end}}>{{.}}</option>{{end}}</select>
                </div>
                <div><label>Type Name</label>
                    <select name="type_name">{{range index .Options "TypeName"}}<option value="{{.}}"{{if eq . $.Spec.TypeName}} selected{{end}}>{{.}}</option>{{end}}</select>
                </div>
                <div><label>Operating System</label>
                    <select name="os">{{range index .Options "OS"}}<option value="{{.}}"{{if eq . $.Spec.OS}} selected{{end}}>{{.}}</option>{{end}}</select>
                </div>
                <div><label>RAM (GB)</label>
                    <input type="number" name="ram_gb" min="2" max="64" step="1" value="{{.Spec.RamGB}}">
                </div>
                <div><label>Weight (kg)</label>
                    <input type="number" name="weight_kg" min="0.5" max="5.0" step="0.1" value="{{printf "%.1f" .Spec.WeightKG}}">
                </div>
                <div><label>Screen Size (inches)</label>
                    <input type="number" name="inches" min="10.0" max="20.0" step="0.1" value="{{printf "%.1f" .Spec.Inches}}">
                </div>
            </div>
        </div>

        <div class="card">
            <h2>Screen Details</h2>
            <div class="grid">
                <div><label>Screen Type / Resolution</label>
                    <select name="screen">{{range index .Options "Screen"}}<option value="{{.}}"{{if eq . $.Spec.Screen}} selected{{end}}>{{.}}</option>{{end}}</select>
                </div>
                <div><label>Width (pixels)</label>
                    <input type="number" name="screen_w" min="800" max="4000" step="1" value="{{.Spec.ScreenW}}">
                </div>
                <div><label>Height (pixels)</label>
                    <input type="number" name="screen_h" min="600" max="4000" step="1" value="{{.Spec.ScreenH}}">
                </div>
                <div><label>Touchscreen</label>
                    <select name="touchscreen"><option{{if not .Spec.Touchscreen}} selected{{end}}>No</option><option{{if .Spec.Touchscreen}} selected{{end}}>Yes</option></select>
                </div>
                <div><label>Retina Display</label>
                    <select name="retina_display"><option{{if not .Spec.RetinaDisplay}} selected{{end}}>No</option><option{{if .Spec.RetinaDisplay}} selected{{end}}>Yes</option></select>
                </div>
                <div><label>IPS Panel</label>
                    <select name="ips_panel"><option{{if not .Spec.IPSPanel}} selected{{end}}>No</option><option{{if .Spec.IPSPanel}} selected{{end}}>Yes</option></select>
                </div>
            </div>
        </div>

        <div class="card">
            <h2>Processor &amp; Graphics</h2>
            <div class="grid">
                <div><label>CPU Company</label>
                    <select name="cpu_company">{{range index .Options "CPU_company"}}<option value="{{.}}"{{if eq . $.Spec.CPUCompany}} selected{{end}}>{{.}}</option>{{end}}</select>
                </div>
                <div><label>CPU Model</label>
                    <select name="cpu_model">{{range index .Options "CPU_model"}}<option value="{{.}}"{{if eq . $.Spec.CPUModel}} selected{{end}}>{{.}}</option>{{end}}</select>
                </div>
                <div><label>CPU Frequency (GHz)</label>
                    <input type="number" name="cpu_freq_ghz" min="1.0" max="5.0" step="0.1" value="{{printf "%.1f" .Spec.CPUFreqGHz}}">
                </div>
                <div><label>GPU Company</label>
                    <select name="gpu_company">{{range index .Options "GPU_company"}}<option value="{{.}}"{{if eq . $.Spec.GPUCompany}} selected{{end}}>{{.}}</option>{{end}}</select>
                </div>
                <div><label>GPU Model</label>
                    <select name="gpu_model">{{range index .Options "GPU_model"}}<option value="{{.}}"{{if eq . $.Spec.GPUModel}} selected{{end}}>{{.}}</option>{{end}}</select>
                </div>
            </div>
        </div>

        <div class="card">
            <h2>Storage</h2>
            <div class="grid">
                <div><label>Primary Storage Type</label>
                    <select name="primary_storage_type">{{range index .Options "PrimaryStorageType"}}<option value="{{.}}"{{if eq . $.Spec.PrimaryStorageType}} selected{{end}}>{{.}}</option>{{end}}</select>
                </div>
                <div><label>Primary Storage Size (GB)</label>
                    <input type="number" name="primary_storage_gb" min="0" max="4096" step="1" value="{{.Spec.PrimaryStorageGB}}">
                </div>
                <div><label>Secondary Storage Type</label>
                    <select name="secondary_storage_type">{{range index .Options "SecondaryStorageType"}}<option value="{{.}}"{{if eq . $.Spec.SecondaryStorageType}} selected{{end}}>{{.}}</option>{{end}}</select>
                </div>
                <div><label>Secondary Storage Size (GB, 0 = none)</label>
                    <input type="number" name="secondary_storage_gb" min="0" max="4096" step="1" value="{{.Spec.SecondaryStorageGB}}">
                </div>
            </div>
        </div>

        <button type="submit">Predict Price</button>
    </form>

    <div class="footer">model {{.ModelVersion}}</div>
</div>
</body>
</html>
`
