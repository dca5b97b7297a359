package render

import "html/template"

type frameData struct {
	Title   string
	Live    template.HTML
	Days    template.HTML
	Months  template.HTML
	Records template.HTML
}

var frameTmpl = template.Must(template.New("frame").Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: Arial, sans-serif;
            padding: 20px;
            background-color: #f4f4f4;
        }

        h1 {
            text-align: center;
            margin-bottom: 5px;
            color: #333;
        }

        .grille {
            display: grid;
            grid-template-columns: 1fr 1fr;
            grid-template-rows: 150px 350px 350px;
            gap: 20px;
            max-width: 1400px;
            margin: 0 auto;
        }

        .case {
            background-color: white;
            border: 2px solid #ddd;
            border-radius: 8px;
            padding: 20px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }

        .case h2 {
            margin-bottom: 15px;
            color: #555;
            border-bottom: 2px solid #4CAF50;
            padding-bottom: 10px;
        }

        .case-live {
            grid-column: span 2;
            overflow-x: auto;
        }

        .case-days {
            grid-row: span 2;
            overflow-x: auto;
        }

        .climato-days {
            width: 100%;
            border-collapse: collapse;
            margin-top: 10px;
        }

        .climato-days th {
            background-color: #B1B1B1;
            color: black;
            padding: 8px;
            text-align: left;
            font-weight: bold;
            position: sticky;
            top: 0;
            z-index: 10;
        }

        .climato-days td {
            padding: 4px 8px;
            border-bottom: 1px solid #ddd;
        }

        .climato-days tr:hover {
            background-color: #f5f5f5;
        }

        @media (max-width: 768px) {
            .grille {
                grid-template-columns: 1fr;
                grid-template-rows: auto;
            }

            .case-days {
                grid-column: span 1;
            }
        }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>

    <div class="grille">
        <div class="case case-live">
            {{.Live}}
        </div>

        <div class="case case-days">
            {{.Days}}
        </div>

        <div class="case case-months">
            {{.Months}}
        </div>

        <div class="case case-records">
            {{.Records}}
        </div>

    </div>
</body>
</html>
`))
